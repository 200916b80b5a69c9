package instance

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRunning_NoInstance(t *testing.T) {
	dir := t.TempDir()

	running, pid, err := Running(dir)
	if err != nil || running || pid != 0 {
		t.Fatalf("Running() = %v, %d, %v; want false, 0, nil", running, pid, err)
	}
	if err := RequireIdle(dir); err != nil {
		t.Fatalf("RequireIdle() = %v", err)
	}
}

func TestRunning_StaleLockFile(t *testing.T) {
	dir := t.TempDir()
	fl, err := Lock(dir)
	if err != nil {
		t.Fatalf("Lock() failed: %v", err)
	}
	Cleanup(dir, fl)

	// The lock file stays behind but nobody holds it.
	if _, err := os.Stat(filepath.Join(dir, lockFileName)); err != nil {
		t.Fatalf("lock file missing: %v", err)
	}
	if running, _, err := Running(dir); err != nil || running {
		t.Fatalf("Running() = %v, %v; want false", running, err)
	}
}

func TestRunning_WithInstance(t *testing.T) {
	dir := t.TempDir()

	fl, err := Lock(dir)
	if err != nil {
		t.Fatalf("Lock() failed: %v", err)
	}
	defer Cleanup(dir, fl)

	running, pid, err := Running(dir)
	if err != nil || !running || pid != 0 {
		t.Fatalf("Running() without pid file = %v, %d, %v", running, pid, err)
	}

	if err := WritePID(dir); err != nil {
		t.Fatal(err)
	}
	running, pid, err = Running(dir)
	if err != nil || !running || pid != os.Getpid() {
		t.Fatalf("Running() = %v, %d, %v; want true, %d", running, pid, err, os.Getpid())
	}

	if err := RequireIdle(dir); !errors.Is(err, ErrRunning) {
		t.Fatalf("RequireIdle() = %v, want ErrRunning", err)
	}
}
