package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/freshtrack/client/api"
)

// ErrNotCached means no definition is on disk for that assessment.
var ErrNotCached = errors.New("assessment not cached")

// Cache keeps fetched assessment definitions on disk, zstd-compressed,
// so an assessment's instructions can still render when the backend is
// unreachable. The cache is advisory: it is never consulted for
// anything authoritative (scores, attempts, grading).
type Cache struct {
	dir string
}

func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("cache dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir %s: %w", dir, err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) path(assessmentID string) string {
	return filepath.Join(c.dir, assessmentID+".json.zst")
}

func (c *Cache) Put(assessment *api.Assessment) error {
	data, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("failed to encode assessment %s: %w", assessment.ID, err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	compressed := enc.EncodeAll(data, nil)
	enc.Close()

	if err := os.WriteFile(c.path(assessment.ID), compressed, 0o644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (c *Cache) Get(assessmentID string) (*api.Assessment, error) {
	compressed, err := os.ReadFile(c.path(assessmentID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()
	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress cache entry: %w", err)
	}
	var assessment api.Assessment
	if err := json.Unmarshal(data, &assessment); err != nil {
		return nil, fmt.Errorf("failed to decode cached assessment: %w", err)
	}
	return &assessment, nil
}
