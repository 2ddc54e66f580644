package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"cjslex/internal/cjs"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты сканирования по SHA-256 содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the msgpack record of one scan result.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Imports   []string
	Exports   []string
	Reexports []string
	Errors    []DiskError
}

// DiskError mirrors cjs.Error.
type DiskError struct {
	Kind        uint8
	Pos         uint32
	Char        byte
	Message     string
	Recoverable bool
}

// OpenDiskCache creates dir if needed and returns a cache rooted there.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, errors.New("disk cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("disk cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог по первому байту, чтобы не складывать всё в одну папку.
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a result to the disk cache.
func (c *DiskCache) Put(key [32]byte, res *cjs.ParseResult) error {
	if c == nil || res == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if err := msgpack.NewEncoder(f).Encode(toDiskPayload(res)); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads a cached result. Missing, corrupt and outdated entries are misses;
// only unexpected I/O failures are returned as errors.
func (c *DiskCache) Get(key [32]byte) (*cjs.ParseResult, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, nil
	}
	res := fromDiskPayload(&payload)
	if res == nil {
		return nil, false, nil
	}
	return res, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "results"))
}

func toDiskPayload(res *cjs.ParseResult) *DiskPayload {
	payload := &DiskPayload{
		Schema:    diskCacheSchemaVersion,
		Imports:   res.Imports,
		Exports:   res.Exports,
		Reexports: res.Reexports,
		Errors:    make([]DiskError, len(res.Errors)),
	}
	for i, e := range res.Errors {
		payload.Errors[i] = DiskError{
			Kind:        uint8(e.Kind),
			Pos:         e.Pos,
			Char:        e.Char,
			Message:     e.Message,
			Recoverable: e.Recoverable,
		}
	}
	return payload
}

func fromDiskPayload(payload *DiskPayload) *cjs.ParseResult {
	if payload == nil || payload.Schema != diskCacheSchemaVersion {
		return nil
	}
	res := &cjs.ParseResult{
		Imports:   payload.Imports,
		Exports:   payload.Exports,
		Reexports: payload.Reexports,
	}
	for _, e := range payload.Errors {
		res.Errors = append(res.Errors, cjs.Error{
			Kind:        cjs.ErrorKind(e.Kind),
			Pos:         e.Pos,
			Char:        e.Char,
			Message:     e.Message,
			Recoverable: e.Recoverable,
		})
	}
	return res
}
