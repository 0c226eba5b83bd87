package config

import (
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	flag "github.com/spf13/pflag"
)

// Config holds all backend and runtime configuration.
type Config struct {
	// Base is the root directory of the filesystem backend.
	Base string
	// URI selects the Redis backend when set (redis://...).
	URI    string
	Volume string

	// PollInterval is the recurring delay of the change-notification poll.
	PollInterval time.Duration

	JSON    bool
	NoColor bool
	Color   bool
	Verbose bool

	HistoryFile string

	// Remaining args after flag parsing (single-command mode).
	Args []string
}

// Default returns a Config with default values, honoring RESFS_*
// environment variables.
func Default() *Config {
	home, _ := os.UserHomeDir()
	histFile := home + "/.resfs_history"
	if env := os.Getenv("RESFS_HISTORY"); env != "" {
		histFile = env
	}

	base := "."
	if env := os.Getenv("RESFS_BASE"); env != "" {
		base = env
	}

	volume := "main"
	if env := os.Getenv("RESFS_VOLUME"); env != "" {
		volume = env
	}

	return &Config{
		Base:         base,
		URI:          os.Getenv("RESFS_URI"),
		Volume:       volume,
		PollInterval: 30 * time.Second,
		HistoryFile:  histFile,
	}
}

// RegisterFlags registers CLI flags on the given flag set.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVarP(&c.Base, "base", "b", c.Base, "Base directory of the resource store")
	fs.StringVarP(&c.URI, "uri", "u", c.URI, "Redis backend URI (redis://...)")
	fs.StringVar(&c.Volume, "volume", c.Volume, "Redis backend volume name")

	fs.DurationVar(&c.PollInterval, "poll-interval", c.PollInterval, "Change-notification poll interval")

	fs.BoolVar(&c.JSON, "json", false, "JSON output mode")
	fs.BoolVar(&c.NoColor, "no-color", false, "Disable colors")
	fs.BoolVar(&c.Color, "color", false, "Force colors")
	fs.BoolVarP(&c.Verbose, "verbose", "v", false, "Verbose logging")
}

// RedisOptions parses the backend URI into go-redis options.
func (c *Config) RedisOptions() (*redis.Options, error) {
	return redis.ParseURL(c.URI)
}

// ShouldColor returns true if color output should be enabled.
func (c *Config) ShouldColor() bool {
	if c.NoColor {
		return false
	}
	if c.Color {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return true
}
