package objimport

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4/v4"

	"github.com/iyesgames/ima/internal/hash"
)

// Cache memoizes parsed OBJ geometry on disk, keyed by the RapidHash of
// the source bytes, so repeated conversions of the same file skip
// re-parsing. Entries are lz4-compressed on disk, since parsed geometry
// (flat float32/uint32 slices) compresses well and conversions are
// typically run over many similarly-shaped meshes in a single batch.
type Cache struct {
	dir string
}

// NewCache returns a Cache rooted at dir, creating it if necessary.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(source []byte) string {
	key := hash.Sum(source)
	return filepath.Join(c.dir, fmt.Sprintf("%016x.objcache", key))
}

// Load returns the cached Mesh for source, or (nil, nil) on a cache miss.
func (c *Cache) Load(source []byte) (*Mesh, error) {
	f, err := os.Open(c.pathFor(source))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}
	defer f.Close()

	var mesh Mesh
	if err := gob.NewDecoder(lz4.NewReader(f)).Decode(&mesh); err != nil {
		return nil, fmt.Errorf("objimport: decoding cache entry: %w", err)
	}

	return &mesh, nil
}

// Store saves mesh in the cache under source's key.
func (c *Cache) Store(source []byte, mesh *Mesh) error {
	var buf bytes.Buffer

	zw := lz4.NewWriter(&buf)
	if err := gob.NewEncoder(zw).Encode(mesh); err != nil {
		return fmt.Errorf("objimport: encoding cache entry: %w", err)
	}

	if err := zw.Close(); err != nil {
		return err
	}

	return os.WriteFile(c.pathFor(source), buf.Bytes(), 0o644)
}

// ParseCached parses source through cache, returning the cached Mesh on a
// hit and populating the cache on a miss.
func ParseCached(cache *Cache, source []byte) (*Mesh, error) {
	mesh, err := cache.Load(source)
	if err != nil {
		return nil, err
	}

	if mesh != nil {
		return mesh, nil
	}

	mesh, err = Parse(bytes.NewReader(source))
	if err != nil {
		return nil, err
	}

	if err := cache.Store(source, mesh); err != nil {
		return nil, err
	}

	return mesh, nil
}
