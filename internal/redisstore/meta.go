package redisstore

import (
	"strconv"
	"time"

	"github.com/jodygarnett/geoserver/internal/resource"
)

// Metadata is the per-entry record kept in a Redis hash.
type Metadata struct {
	Type  resource.Type
	Size  int64
	MTime int64 // unix seconds
}

// NewDirMeta creates metadata for a new directory.
func NewDirMeta() *Metadata {
	return &Metadata{Type: resource.Directory, MTime: time.Now().Unix()}
}

// NewFileMeta creates metadata for a new file of the given size.
func NewFileMeta(size int64) *Metadata {
	return &Metadata{Type: resource.File, Size: size, MTime: time.Now().Unix()}
}

// ToMap converts metadata to a map for HSET.
func (m *Metadata) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":  typeField(m.Type),
		"size":  strconv.FormatInt(m.Size, 10),
		"mtime": strconv.FormatInt(m.MTime, 10),
	}
}

// MetaFromMap parses a Redis hash into Metadata. Returns nil for an empty
// hash (no such entry).
func MetaFromMap(h map[string]string) *Metadata {
	if len(h) == 0 {
		return nil
	}
	size, _ := strconv.ParseInt(h["size"], 10, 64)
	mtime, _ := strconv.ParseInt(h["mtime"], 10, 64)
	return &Metadata{
		Type:  fieldType(h["type"]),
		Size:  size,
		MTime: mtime,
	}
}

func typeField(t resource.Type) string {
	if t == resource.Directory {
		return "dir"
	}
	return "file"
}

func fieldType(s string) resource.Type {
	if s == "dir" {
		return resource.Directory
	}
	return resource.File
}
