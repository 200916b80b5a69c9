// pattern: Functional Core

// Package persist serializes a dock container's arrangement and keeps it in
// a key/value store.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoState is returned when the store holds nothing for a container.
	ErrNoState = errors.New("no saved layout")
	// ErrMalformed is returned for unparsable or incomplete saved layouts.
	ErrMalformed = errors.New("malformed saved layout")
)

// Window is the saved form of one panel.
type Window struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Width      float64 `json:"width"`
	MinWidth   float64 `json:"minWidth"`
	Controlbox bool    `json:"controlbox"`
	Maximized  bool    `json:"maximized"`
	Stacked    *string `json:"stacked"`
	Order      int     `json:"order"`
}

// StackedUnder returns the saved host id, or "" for a free panel.
func (w Window) StackedUnder() string {
	if w.Stacked == nil {
		return ""
	}
	return *w.Stacked
}

// State is the saved arrangement of one container.
type State struct {
	Windows             []Window            `json:"windows"`
	StackedWindows      map[string][]string `json:"stackedWindows"`
	ActiveStackedWindow *string             `json:"activeStackedWindow"`
	// ActiveStackedWindows keeps the active member of every group;
	// ActiveStackedWindow only carries the first group's.
	ActiveStackedWindows map[string]string `json:"activeStackedWindows,omitempty"`
	Locked               bool              `json:"locked"`
	AllowStacking        bool              `json:"allowStacking"`
}

// Window returns the saved entry for id.
func (s *State) Window(id string) (Window, bool) {
	for _, w := range s.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return Window{}, false
}

// ActiveFor returns the saved active member of host's group.
func (s *State) ActiveFor(host string) string {
	if id, ok := s.ActiveStackedWindows[host]; ok {
		return id
	}
	if s.ActiveStackedWindow == nil {
		return ""
	}
	for _, mid := range s.StackedWindows[host] {
		if mid == *s.ActiveStackedWindow {
			return mid
		}
	}
	if *s.ActiveStackedWindow == host {
		return host
	}
	return ""
}

// Marshal encodes a state as the stored JSON blob.
func Marshal(s State) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode layout: %w", err)
	}
	return string(data), nil
}

// Parse decodes a stored JSON blob. Empty input is ErrNoState; invalid JSON
// or a missing windows array is ErrMalformed.
func Parse(raw string) (*State, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoState
	}

	var probe struct {
		Windows json.RawMessage `json:"windows"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(probe.Windows) == 0 || string(probe.Windows) == "null" {
		return nil, fmt.Errorf("%w: missing windows", ErrMalformed)
	}

	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &s, nil
}

// StringPtr returns a pointer to s, or nil for "".
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
