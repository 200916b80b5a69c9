// pattern: Imperative Shell
package instance

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

// Running reports whether another process holds the data directory lock,
// and its pid when the pid file is readable (0 otherwise).
func Running(dataDir string) (bool, int, error) {
	lockPath := filepath.Join(dataDir, lockFileName)
	if _, err := os.Stat(lockPath); os.IsNotExist(err) {
		return false, 0, nil
	}

	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check lock: %w", err)
	}
	if locked {
		// Nobody is running; release the lock we just took.
		_ = fl.Unlock()
		return false, 0, nil
	}

	data, err := os.ReadFile(filepath.Join(dataDir, pidFileName))
	if err != nil {
		return true, 0, nil
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return true, 0, nil
	}
	return true, pid, nil
}

// RequireIdle fails with ErrRunning when a running instance owns dataDir.
// Commands that write saved layouts call it first.
func RequireIdle(dataDir string) error {
	running, pid, err := Running(dataDir)
	if err != nil {
		return err
	}
	if running {
		if pid > 0 {
			return fmt.Errorf("%w (pid %d)", ErrRunning, pid)
		}
		return ErrRunning
	}
	return nil
}
