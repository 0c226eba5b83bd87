package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jodygarnett/geoserver/internal/cli"
	"github.com/jodygarnett/geoserver/internal/cmd"
	"github.com/jodygarnett/geoserver/internal/config"
	"github.com/jodygarnett/geoserver/internal/output"
	"github.com/jodygarnett/geoserver/internal/redisstore"
	"github.com/jodygarnett/geoserver/internal/resource"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Default()

	// Custom flag set to avoid os.Exit on parse error
	flags := flag.NewFlagSet("resfs", flag.ContinueOnError)
	flags.SetInterspersed(false) // Stop parsing at first non-flag arg (the command)
	cfg.RegisterFlags(flags)
	showVersion := flags.Bool("version", false, "Show version and exit")

	// Parse flags; remaining args are the single-command
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	cfg.Args = flags.Args()

	if *showVersion {
		fmt.Printf("resfs %s\n", version)
		return 0
	}

	logger := zap.NewNop()
	if cfg.Verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
		defer logger.Sync()
	}
	resource.SetLogger(logger)

	// Set up color
	if !cfg.ShouldColor() {
		color.NoColor = true
	}

	formatter := output.NewFormatter(cfg.JSON, cfg.ShouldColor())

	var store resource.Store
	var watcher *resource.FileWatcher

	if cfg.URI != "" {
		// Redis backend; no change notification.
		opts, err := cfg.RedisOptions()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid backend URI: %s\n", err)
			return 2
		}
		ctx := context.Background()
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot connect to Redis at %s: %s\n", opts.Addr, err)
			return 1
		}
		defer rdb.Close()

		rs := redisstore.New(ctx, rdb, cfg.Volume, logger)
		if err := rs.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to initialize volume: %s\n", err)
			return 1
		}
		store = rs
	} else {
		fs, err := resource.NewFileStore(cfg.Base, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
		watcher = fs.Watcher()
		watcher.Schedule(cfg.PollInterval)
		store = fs
	}

	// Create router
	router := cmd.NewRouter(store, watcher, cfg, formatter)

	// Single-command mode
	if len(cfg.Args) > 0 {
		line := strings.Join(cfg.Args, " ")
		if err := router.Execute(line); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		return 0
	}

	// Interactive REPL mode
	repl := cli.NewREPL(router, cfg, formatter)
	if err := repl.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}
