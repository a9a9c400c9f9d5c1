package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/ytget/kalite-mobile/internal/platform"
)

// CompletedMarker is the zero-byte file whose presence means the bundled
// content is fully downloaded.
const CompletedMarker = "completed"

// Store manages the content directory
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// EnsureDir creates the content directory if it does not exist yet
func (s *Store) EnsureDir() error {
	if err := platform.CreateDirectoryIfNotExists(s.dir); err != nil {
		return fmt.Errorf("failed to create content directory %s: %w", s.dir, err)
	}
	return nil
}

// Path returns the absolute local path for a content file
func (s *Store) Path(name string) string {
	p := filepath.Join(s.dir, name)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// URI returns the file:// URI of a content file
func (s *Store) URI(name string) string {
	return "file://" + filepath.ToSlash(s.Path(name))
}

// Exists reports whether a content file is present
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// VideoAvailable reports whether the completion marker exists
func (s *Store) VideoAvailable() bool {
	return s.Exists(CompletedMarker)
}

// MarkCompleted creates the completion marker, leaving an existing one untouched
func (s *Store) MarkCompleted() error {
	if err := s.EnsureDir(); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, CompletedMarker), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create completion marker: %w", err)
	}
	return f.Close()
}

// DeleteAll removes every file in the content directory and returns how many
// were removed. A missing or empty directory removes nothing.
func (s *Store) DeleteAll() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read content directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		removed++
	}

	return removed, nil
}

// FreeSpace returns the free bytes on the volume holding the content directory.
// Before the directory exists the nearest existing parent is measured.
func (s *Store) FreeSpace() (uint64, error) {
	dir := s.Path("")
	for {
		if _, err := os.Stat(dir); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	usage, err := disk.Usage(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read disk usage for %s: %w", dir, err)
	}
	return usage.Free, nil
}
