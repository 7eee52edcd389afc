package publisher

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// AcquireLock claims the single-instance publish lock. Two publishers on the
// same machine would interleave journal and log writes; remote concurrency
// is handled by the registry's version guard, not this lock.
func AcquireLock(path string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire publish lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("another publish run holds the lock at %s", path)
	}
	return lock, nil
}
