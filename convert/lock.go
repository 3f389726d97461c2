package convert

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// BusyError reports that another vid2gif process is converting the same input.
type BusyError struct {
	Path     string
	LockPath string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("%s is already being converted by another process (lock %s)", e.Path, e.LockPath)
}

// lockInput takes an exclusive, non-blocking lock for input inside dir.
// The returned function releases it.
func lockInput(dir, input string) (func() error, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("resolve input path: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	lockPath := filepath.Join(dir, hex.EncodeToString(sum[:8])+".lock")

	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, &BusyError{Path: input, LockPath: lockPath}
	}
	return lock.Unlock, nil
}
