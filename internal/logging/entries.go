// pattern: Functional Core

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// LogEntry is one parsed log line as shown in the TUI log panel.
type LogEntry struct {
	Timestamp time.Time
	Level     string // DEBUG, INFO, WARN, ERROR
	Scope     string // e.g. "engine.main"
	Message   string
	Fields    map[string]any
}

// String renders the entry on one line. Fields are sorted by key.
func (e LogEntry) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %-5s [%s] %s", e.Timestamp.Format("15:04:05"), e.Level, e.Scope, e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, e.Fields[k])
	}
	return sb.String()
}

// MatchesScope reports whether the entry's scope is prefix or nested under
// it. An empty prefix matches everything.
func (e LogEntry) MatchesScope(prefix string) bool {
	if prefix == "" || e.Scope == prefix {
		return true
	}
	return strings.HasPrefix(e.Scope, prefix+".")
}

var levelRank = map[string]int{"DEBUG": 0, "INFO": 1, "WARN": 2, "ERROR": 3}

// AtLeast reports whether the entry's level is min or more severe.
func (e LogEntry) AtLeast(min string) bool {
	return levelRank[e.Level] >= levelRank[ParseLevel(min)]
}

// ParseLevel normalizes a level name to upper case. Unknown names are INFO.
func ParseLevel(level string) string {
	switch strings.ToLower(level) {
	case "debug":
		return "DEBUG"
	case "warn", "warning":
		return "WARN"
	case "error", "dpanic", "panic", "fatal":
		return "ERROR"
	default:
		return "INFO"
	}
}

// Ring keeps the most recent entries for display.
type Ring struct {
	buf   []LogEntry
	start int
	n     int
}

// NewRing returns a ring holding up to size entries.
func NewRing(size int) *Ring {
	if size < 1 {
		size = 1
	}
	return &Ring{buf: make([]LogEntry, size)}
}

// Push appends an entry, evicting the oldest when full.
func (r *Ring) Push(e LogEntry) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = e
		r.n++
		return
	}
	r.buf[r.start] = e
	r.start = (r.start + 1) % len(r.buf)
}

// Len returns the number of stored entries.
func (r *Ring) Len() int { return r.n }

// Tail returns up to n of the newest entries, oldest first.
func (r *Ring) Tail(n int) []LogEntry {
	if n > r.n {
		n = r.n
	}
	out := make([]LogEntry, 0, n)
	for i := r.n - n; i < r.n; i++ {
		out = append(out, r.buf[(r.start+i)%len(r.buf)])
	}
	return out
}
