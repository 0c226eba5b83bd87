package redisstore

import (
	"testing"

	"github.com/jodygarnett/geoserver/internal/resource"
)

func TestMetaRoundTrip(t *testing.T) {
	m := NewFileMeta(42)

	h := make(map[string]string)
	for k, v := range m.ToMap() {
		h[k] = v.(string)
	}

	parsed := MetaFromMap(h)
	if parsed == nil {
		t.Fatal("MetaFromMap returned nil for a populated hash")
	}
	if parsed.Type != resource.File || parsed.Size != 42 || parsed.MTime != m.MTime {
		t.Errorf("parsed = %+v, want %+v", parsed, m)
	}
}

func TestMetaFromMap_Empty(t *testing.T) {
	if MetaFromMap(nil) != nil {
		t.Error("empty hash must read as no entry")
	}
	if MetaFromMap(map[string]string{}) != nil {
		t.Error("empty hash must read as no entry")
	}
}

func TestDirMeta(t *testing.T) {
	m := NewDirMeta()
	if m.Type != resource.Directory {
		t.Errorf("Type = %v, want directory", m.Type)
	}
	if m.ToMap()["type"] != "dir" {
		t.Errorf("type field = %v, want dir", m.ToMap()["type"])
	}
}
