// pattern: Imperative Shell
package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	flag "github.com/spf13/pflag"

	"dockrow/internal/logging"
)

// TailConfig configures log printing and the follow loop.
type TailConfig struct {
	Path      string
	Lines     int
	Follow    bool
	Scope     string
	Level     string
	Interval  time.Duration
	NoColor   bool
	Writer    io.Writer
	ErrWriter io.Writer
}

var levelStyles = map[string]lipgloss.Style{
	"DEBUG": lipgloss.NewStyle().Faint(true),
	"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
}

func runLogsCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("logs", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	follow := fs.BoolP("follow", "f", false, "keep printing new entries")
	lines := fs.IntP("lines", "n", 50, "number of entries to print first")
	scope := fs.String("scope", "", "only entries of this scope or nested under it")
	level := fs.String("level", "debug", "minimum level")
	noColor := fs.Bool("no-color", false, "plain output")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return TailLog(ctx, TailConfig{
		Path:      LogPath(env.DataDir),
		Lines:     *lines,
		Follow:    *follow,
		Scope:     *scope,
		Level:     *level,
		Interval:  500 * time.Millisecond,
		NoColor:   *noColor,
		Writer:    env.Out,
		ErrWriter: env.Err,
	})
}

// TailLog prints the last Lines matching entries of the log file and, with
// Follow, keeps polling for new ones until the context is cancelled. A file
// that shrinks was rotated and is read again from the start.
func TailLog(ctx context.Context, cfg TailConfig) error {
	// A missing file is fine when following; the host may not have
	// started yet.
	f, err := os.Open(cfg.Path)
	if err != nil && !(errors.Is(err, os.ErrNotExist) && cfg.Follow) {
		return fmt.Errorf("open log: %w", err)
	}

	var offset int64
	if err == nil {
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("read log: %w", err)
		}
		complete, _ := splitComplete(data)
		offset = int64(len(complete))

		ring := logging.NewRing(cfg.Lines)
		for _, entry := range cfg.parse(complete) {
			ring.Push(entry)
		}
		for _, entry := range ring.Tail(max(cfg.Lines, 0)) {
			cfg.print(entry)
		}
	}

	if !cfg.Follow {
		return nil
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			info, err := os.Stat(cfg.Path)
			if err != nil {
				continue
			}
			if info.Size() < offset {
				_, _ = fmt.Fprintln(cfg.ErrWriter, "Log rotated.")
				offset = 0
			}
			if info.Size() == offset {
				continue
			}
			chunk, err := readFrom(cfg.Path, offset)
			if err != nil {
				return err
			}
			complete, _ := splitComplete(chunk)
			offset += int64(len(complete))
			for _, entry := range cfg.parse(complete) {
				cfg.print(entry)
			}
		}
	}
}

func readFrom(path string, offset int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek log: %w", err)
	}
	return io.ReadAll(f)
}

// splitComplete separates whole lines from a trailing partial one.
func splitComplete(data []byte) (complete, rest []byte) {
	i := bytes.LastIndexByte(data, '\n')
	if i < 0 {
		return nil, data
	}
	return data[:i+1], data[i+1:]
}

func (cfg TailConfig) parse(data []byte) []logging.LogEntry {
	var out []logging.LogEntry
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		entry, err := logging.ParseEntry(sc.Bytes())
		if err != nil {
			continue
		}
		if !entry.MatchesScope(cfg.Scope) || (cfg.Level != "" && !entry.AtLeast(cfg.Level)) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (cfg TailConfig) print(entry logging.LogEntry) {
	line := entry.String()
	if cfg.NoColor {
		_, _ = fmt.Fprintln(cfg.Writer, ansi.Strip(line))
		return
	}
	if style, ok := levelStyles[entry.Level]; ok {
		line = style.Render(line)
	}
	_, _ = fmt.Fprintln(cfg.Writer, line)
}
