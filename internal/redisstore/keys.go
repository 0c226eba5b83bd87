package redisstore

import "fmt"

// KeyGen generates the Redis key names for a given volume. A resource path
// is mapped onto three keys: a metadata hash, a data string and, for
// directories, a set of child names.
type KeyGen struct {
	Volume string
}

// NewKeyGen creates a KeyGen for the given volume.
func NewKeyGen(volume string) *KeyGen {
	return &KeyGen{Volume: volume}
}

// Meta returns the metadata hash key for a path.
// e.g., res:main:meta:styles/default.sld
func (k *KeyGen) Meta(path string) string {
	return fmt.Sprintf("res:%s:meta:%s", k.Volume, path)
}

// Data returns the content key for a path.
func (k *KeyGen) Data(path string) string {
	return fmt.Sprintf("res:%s:data:%s", k.Volume, path)
}

// Dir returns the child-set key for a directory path.
func (k *KeyGen) Dir(path string) string {
	return fmt.Sprintf("res:%s:dir:%s", k.Volume, path)
}
