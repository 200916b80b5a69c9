//go:build integration

package persist

import (
	"path/filepath"
	"testing"
	"time"
)

// Run with: go test -tags=integration ./internal/persist/...
func TestWatch_SeesFileStoreWrites(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	got := make(chan string, 8)
	w, err := Watch(fs.Path(Key("main")), func(content string) { got <- content }, nil)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	// Writes to other keys are ignored.
	if err := fs.Set(Key("other"), "x"); err != nil {
		t.Fatal(err)
	}
	if err := fs.Set(Key("main"), `{"windows":[]}`); err != nil {
		t.Fatal(err)
	}

	select {
	case content := <-got:
		if content != `{"windows":[]}` {
			t.Errorf("content = %q", content)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for write notification")
	}
}

func TestWatch_CloseIsIdempotent(t *testing.T) {
	w, err := Watch(filepath.Join(t.TempDir(), "layout.json"), func(string) {}, nil)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
