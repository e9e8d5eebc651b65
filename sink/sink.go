// Package sink provides output destinations for generated documentation.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Sink stores generated files.
// Implementations must be safe for concurrent calls.
type Sink interface {
	// WriteFile writes content to path. The path is relative; the sink
	// determines the actual location.
	WriteFile(ctx context.Context, path string, content []byte) error

	// ReadFile returns the content previously stored at path. It returns an
	// error wrapping fs.ErrNotExist when nothing is stored there.
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// Dir writes to a directory on the local filesystem.
type Dir struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode
}

// NewDir returns a Dir writing below root.
func NewDir(root string) *Dir {
	return &Dir{Root: root, Mode: 0644}
}

// WriteFile writes content to path within the root directory, creating
// parent directories as needed. The write is atomic: content goes to a temp
// file that is renamed into place.
func (d *Dir) WriteFile(ctx context.Context, path string, content []byte) error {
	fullPath, err := d.resolve(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	mode := d.Mode
	if mode == 0 {
		mode = 0644
	}

	tmp, err := os.CreateTemp(dir, ".swaggerdoc-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()

	// Leftover temp files share the .swaggerdoc-*.tmp prefix.
	cleanup := func() { _ = os.Remove(tmpPath) }

	switch {
	case writeErr != nil:
		cleanup()
		return fmt.Errorf("write temp file: %w", writeErr)
	case closeErr != nil:
		cleanup()
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return fmt.Errorf("set file mode: %w", err)
	}
	if err := ctx.Err(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		cleanup()
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// ReadFile reads path from the root directory.
func (d *Dir) ReadFile(ctx context.Context, path string) ([]byte, error) {
	fullPath, err := d.resolve(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(fullPath)
}

// resolve validates path and joins it to the root, refusing escapes.
func (d *Dir) resolve(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	fullPath := filepath.Join(d.Root, filepath.FromSlash(path))
	absRoot, err := filepath.Abs(d.Root)
	if err != nil {
		return "", fmt.Errorf("resolve root directory: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) && absPath != absRoot {
		return "", fmt.Errorf("path escapes root directory: %q", path)
	}
	return fullPath, nil
}

// Memory stores files in memory. It backs the preview server and tests.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemory returns an empty Memory sink.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content.
func (m *Memory) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), content...)
	return nil
}

// ReadFile returns a copy of the content stored at path.
func (m *Memory) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content := m.Get(path)
	if content == nil {
		return nil, fmt.Errorf("read %q: %w", path, fs.ErrNotExist)
	}
	return content, nil
}

// Get returns a copy of a single file, or nil if not found.
func (m *Memory) Get(path string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[path]
	if !ok {
		return nil
	}
	return append([]byte{}, content...)
}

// Paths returns the stored paths, sorted.
func (m *Memory) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Reset clears all stored files.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = make(map[string][]byte)
}

// Counting wraps a Sink and tallies successful writes.
type Counting struct {
	Sink

	files atomic.Int64
	bytes atomic.Int64
}

// NewCounting wraps s.
func NewCounting(s Sink) *Counting { return &Counting{Sink: s} }

// WriteFile forwards to the wrapped sink and counts the write on success.
func (c *Counting) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := c.Sink.WriteFile(ctx, path, content); err != nil {
		return err
	}
	c.files.Add(1)
	c.bytes.Add(int64(len(content)))
	return nil
}

// Files returns the number of files written.
func (c *Counting) Files() int64 { return c.files.Load() }

// Bytes returns the number of bytes written.
func (c *Counting) Bytes() uint64 { return uint64(c.bytes.Load()) }

// ValidatePath checks that path is usable as an output location.
// Paths must be relative, use / as separator, contain no .. components,
// and be clean (no ./, duplicate / or trailing /).
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.New("absolute paths not allowed")
	}
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	slashed := filepath.ToSlash(path)
	if cleaned := filepath.ToSlash(filepath.Clean(slashed)); cleaned != slashed {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}
