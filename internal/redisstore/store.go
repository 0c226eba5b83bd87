// Package redisstore provides a resource.Store backed by Redis rather than a
// directory tree. Each entry keeps a metadata hash; file content lives in a
// string key and directory listings in a set of child names. Multi-key
// mutations run in a transactional pipeline so readers never observe a
// half-applied change.
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jodygarnett/geoserver/internal/resource"
)

// Store implements resource.Store over a Redis volume.
type Store struct {
	ctx    context.Context
	rdb    *redis.Client
	keys   *KeyGen
	volume string
	logger *zap.Logger
	locks  *resource.LockRegistry
}

// New creates a Store for the given volume. ctx bounds every Redis call the
// store issues.
func New(ctx context.Context, rdb *redis.Client, volume string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		ctx:    ctx,
		rdb:    rdb,
		keys:   NewKeyGen(volume),
		volume: volume,
		logger: logger,
		locks:  resource.NewLockRegistry(),
	}
}

// Volume returns the volume name.
func (s *Store) Volume() string {
	return s.volume
}

// Init bootstraps the volume root directory if it does not exist.
func (s *Store) Init() error {
	created, err := s.rdb.HSetNX(s.ctx, s.keys.Meta(""), "type", "dir").Result()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if created {
		if _, err := s.rdb.HSet(s.ctx, s.keys.Meta(""), NewDirMeta().ToMap()).Result(); err != nil {
			return fmt.Errorf("init: %w", err)
		}
	}
	return nil
}

// Get returns a handle for the given store path.
func (s *Store) Get(path string) resource.Resource {
	return &redisResource{store: s, path: resource.Clean(path)}
}

// Remove deletes the entry at path, recursively for directories. Removal is
// best effort: entries that cannot be deleted are logged and skipped, and
// the return reports whether everything was removed.
func (s *Store) Remove(path string) bool {
	path = resource.Clean(path)
	meta := s.stat(path)
	if meta == nil {
		return true // already gone
	}
	if meta.Type == resource.Directory {
		allClean := true
		for _, child := range s.readDir(path) {
			allClean = s.Remove(resource.Join(path, child)) && allClean
		}
		if !allClean {
			return false
		}
	}
	return s.removeEntry(path)
}

// removeEntry deletes a single entry and unlinks it from its parent.
func (s *Store) removeEntry(path string) bool {
	parent, base := resource.Split(path)
	pipe := s.rdb.TxPipeline()
	pipe.Del(s.ctx, s.keys.Meta(path))
	pipe.Del(s.ctx, s.keys.Data(path))
	pipe.Del(s.ctx, s.keys.Dir(path))
	pipe.SRem(s.ctx, s.keys.Dir(parent), base)
	if _, err := pipe.Exec(s.ctx); err != nil {
		s.logger.Warn("could not delete", zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}

// Move renames the entry at src to dst, replacing any existing destination.
// Moving an entry onto itself is a no-op success.
func (s *Store) Move(src, dst string) error {
	src = resource.Clean(src)
	dst = resource.Clean(dst)
	if src == dst {
		return nil
	}
	meta := s.stat(src)
	if meta == nil {
		return fmt.Errorf("mv: cannot stat '%s': No such file or directory", src)
	}
	if existing := s.stat(dst); existing != nil {
		if !s.Remove(dst) {
			return fmt.Errorf("mv: cannot replace existing '%s'", dst)
		}
	}
	if err := s.mkdirAll(resource.Parent(dst)); err != nil {
		return err
	}
	return s.move(src, dst, meta)
}

func (s *Store) move(src, dst string, meta *Metadata) error {
	if meta.Type != resource.Directory {
		srcParent, srcBase := resource.Split(src)
		dstParent, dstBase := resource.Split(dst)
		pipe := s.rdb.TxPipeline()
		pipe.Rename(s.ctx, s.keys.Meta(src), s.keys.Meta(dst))
		pipe.Rename(s.ctx, s.keys.Data(src), s.keys.Data(dst))
		pipe.SRem(s.ctx, s.keys.Dir(srcParent), srcBase)
		pipe.SAdd(s.ctx, s.keys.Dir(dstParent), dstBase)
		if _, err := pipe.Exec(s.ctx); err != nil {
			return fmt.Errorf("mv: %w", err)
		}
		return nil
	}

	// Directories move child by child, then the directory entry itself.
	if err := s.createDir(dst); err != nil {
		return err
	}
	for _, child := range s.readDir(src) {
		childPath := resource.Join(src, child)
		childMeta := s.stat(childPath)
		if childMeta == nil {
			continue
		}
		if err := s.move(childPath, resource.Join(dst, child), childMeta); err != nil {
			return err
		}
	}
	if !s.removeEntry(src) {
		return fmt.Errorf("mv: cannot remove '%s'", src)
	}
	return nil
}

// stat returns the metadata for path, or nil when absent (or unreachable).
func (s *Store) stat(path string) *Metadata {
	h, err := s.rdb.HGetAll(s.ctx, s.keys.Meta(path)).Result()
	if err != nil {
		s.logger.Warn("stat failed", zap.String("path", path), zap.Error(err))
		return nil
	}
	return MetaFromMap(h)
}

// readDir returns the child names of a directory, or nil.
func (s *Store) readDir(path string) []string {
	members, err := s.rdb.SMembers(s.ctx, s.keys.Dir(path)).Result()
	if err != nil {
		s.logger.Warn("readdir failed", zap.String("path", path), zap.Error(err))
		return nil
	}
	return members
}

// mkdirAll creates the directory chain down to path.
func (s *Store) mkdirAll(path string) error {
	if path == "" {
		return nil
	}
	if err := s.mkdirAll(resource.Parent(path)); err != nil {
		return err
	}
	meta := s.stat(path)
	if meta != nil {
		if meta.Type != resource.Directory {
			return fmt.Errorf("mkdir: '%s': Not a directory", path)
		}
		return nil
	}
	return s.createDir(path)
}

func (s *Store) createDir(path string) error {
	parent, base := resource.Split(path)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(s.ctx, s.keys.Meta(path), NewDirMeta().ToMap())
	if path != "" {
		pipe.SAdd(s.ctx, s.keys.Dir(parent), base)
	}
	if _, err := pipe.Exec(s.ctx); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return nil
}

// write stores file content at path, creating parent directories as needed.
// The content, metadata and parent linkage land in one transactional
// pipeline.
func (s *Store) write(path string, content []byte) error {
	if meta := s.stat(path); meta != nil && meta.Type == resource.Directory {
		return fmt.Errorf("write: %s: Is a directory", path)
	}
	parent, base := resource.Split(path)
	if err := s.mkdirAll(parent); err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(s.ctx, s.keys.Data(path), string(content), 0)
	pipe.HSet(s.ctx, s.keys.Meta(path), NewFileMeta(int64(len(content))).ToMap())
	pipe.SAdd(s.ctx, s.keys.Dir(parent), base)
	if _, err := pipe.Exec(s.ctx); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
