// pattern: Imperative Shell

package logging

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ChannelSink is a zapcore.WriteSyncer that parses each JSON line into a
// LogEntry and queues it for the TUI. It never blocks; when the queue is
// full the oldest entry is discarded and counted.
type ChannelSink struct {
	entries chan LogEntry
	dropped atomic.Int64

	mu     sync.Mutex
	closed bool
}

// NewChannelSink creates a sink with the given queue size.
func NewChannelSink(bufferSize int) *ChannelSink {
	return &ChannelSink{entries: make(chan LogEntry, bufferSize)}
}

func (s *ChannelSink) Write(p []byte) (int, error) {
	entry, err := ParseEntry(p)
	if err != nil {
		// Unparsable lines are skipped, logging must not fail.
		return len(p), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, fmt.Errorf("write to closed channel sink")
	}

	select {
	case s.entries <- entry:
		return len(p), nil
	default:
	}
	select {
	case <-s.entries:
		s.dropped.Add(1)
	default:
	}
	select {
	case s.entries <- entry:
	default:
		s.dropped.Add(1)
	}
	return len(p), nil
}

func (s *ChannelSink) Sync() error {
	return nil
}

// Close closes the queue. Safe to call more than once.
func (s *ChannelSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.entries)
	}
	return nil
}

// Entries returns the queue.
func (s *ChannelSink) Entries() <-chan LogEntry {
	return s.entries
}

// Dropped returns how many entries were discarded on overflow.
func (s *ChannelSink) Dropped() int64 {
	return s.dropped.Load()
}

// ParseEntry decodes one JSON log line as written by Manager.
func ParseEntry(data []byte) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return LogEntry{}, err
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     "INFO",
		Scope:     "app",
		Fields:    make(map[string]any),
	}
	if msg, ok := raw["msg"].(string); ok {
		entry.Message = msg
	}
	if level, ok := raw["level"].(string); ok {
		entry.Level = ParseLevel(level)
	}
	if scope, ok := raw["logger"].(string); ok {
		entry.Scope = scope
	}
	if ts, ok := raw["ts"].(float64); ok {
		sec := int64(ts)
		entry.Timestamp = time.Unix(sec, int64((ts-float64(sec))*1e9))
	}

	for k, v := range raw {
		switch k {
		case "msg", "level", "logger", "ts", "caller", "stacktrace":
		default:
			entry.Fields[k] = v
		}
	}
	return entry, nil
}
