package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the follow loop and the test to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func logLine(level, scope, msg string) string {
	return `{"level":"` + level + `","ts":1700000000.5,"logger":"` + scope + `","msg":"` + msg + `"}` + "\n"
}

func TestTailLog_PrintsLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dockrow.log")
	content := logLine("info", "app", "one") +
		logLine("debug", "engine.main", "two") +
		"not json\n" +
		logLine("warn", "engine.main", "three") +
		logLine("error", "persist", "four") +
		`{"level":"info","msg":"partial`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		cfg  TailConfig
		want []string
	}{
		{name: "all", cfg: TailConfig{Lines: 10}, want: []string{"one", "two", "three", "four"}},
		{name: "last two", cfg: TailConfig{Lines: 2}, want: []string{"three", "four"}},
		{name: "scope", cfg: TailConfig{Lines: 10, Scope: "engine"}, want: []string{"two", "three"}},
		{name: "level", cfg: TailConfig{Lines: 10, Level: "warn"}, want: []string{"three", "four"}},
		{name: "none", cfg: TailConfig{Lines: 0}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg := tt.cfg
			cfg.Path = path
			cfg.NoColor = true
			cfg.Writer = out
			cfg.ErrWriter = &bytes.Buffer{}

			if err := TailLog(context.Background(), cfg); err != nil {
				t.Fatalf("TailLog: %v", err)
			}

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
				if line == "" {
					continue
				}
				fields := strings.Fields(line)
				got = append(got, fields[len(fields)-1])
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("messages = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTailLog_FormatsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dockrow.log")
	line := `{"level":"warn","ts":1700000000,"logger":"engine.main","msg":"restore refused","panel":"logs"}` + "\n"
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	err := TailLog(context.Background(), TailConfig{Path: path, Lines: 5, NoColor: true, Writer: out, ErrWriter: out})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "WARN  [engine.main] restore refused panel=logs") {
		t.Errorf("output = %q", out.String())
	}
}

func TestTailLog_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.log")
	err := TailLog(context.Background(), TailConfig{Path: path, Lines: 5, Writer: &bytes.Buffer{}, ErrWriter: &bytes.Buffer{}})
	if err == nil {
		t.Error("TailLog without follow should fail on a missing file")
	}
}

func TestTailLog_Follow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dockrow.log")
	if err := os.WriteFile(path, []byte(logLine("info", "app", "first")), 0o644); err != nil {
		t.Fatal(err)
	}

	out := &syncBuffer{}
	errOut := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- TailLog(ctx, TailConfig{
			Path:      path,
			Lines:     10,
			Follow:    true,
			Interval:  10 * time.Millisecond,
			NoColor:   true,
			Writer:    out,
			ErrWriter: errOut,
		})
	}()

	waitFor := func(want string, buf *syncBuffer) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if strings.Contains(buf.String(), want) {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Fatalf("timed out waiting for %q, got %q", want, buf.String())
	}

	waitFor("first", out)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString(logLine("info", "app", "second"))
	_ = f.Close()
	waitFor("second", out)

	// Truncation is treated as rotation.
	if err := os.WriteFile(path, []byte(logLine("info", "app", "x")), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor("Log rotated.", errOut)
	waitFor(" x\n", out)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("TailLog returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("TailLog did not stop after cancel")
	}
}
