// pattern: Imperative Shell
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
)

const (
	lockFileName = "dockrow.lock"
	pidFileName  = "dockrow.pid"
)

// ErrRunning is returned when another dockrow process holds the data
// directory.
var ErrRunning = errors.New("another dockrow instance is already running")

// Lock acquires the exclusive data directory lock. The holder is the only
// process allowed to write saved layouts. Returns the flock handle (caller
// must defer Cleanup) or ErrRunning.
func Lock(dataDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	fl := flock.New(filepath.Join(dataDir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrRunning
	}
	return fl, nil
}

// WritePID records the current process id next to the lock.
func WritePID(dataDir string) error {
	pidPath := filepath.Join(dataDir, pidFileName)
	return os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0o600)
}

// Cleanup removes the pid file and releases the file lock.
func Cleanup(dataDir string, fl *flock.Flock) {
	_ = os.Remove(filepath.Join(dataDir, pidFileName))
	if fl != nil {
		_ = fl.Unlock()
	}
}
