// pattern: Functional Core

package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit identifies how a width was declared.
type Unit int

const (
	UnitNone Unit = iota
	UnitPercent
	UnitPixels
)

// Declared is a width as written by the host: "30%", "240px", "240" or nothing.
type Declared struct {
	Unit  Unit
	Value float64
}

// IsSet reports whether a width was declared at all.
func (d Declared) IsSet() bool { return d.Unit != UnitNone }

// Percent resolves the declared width against the container width.
// Undeclared widths resolve to zero.
func (d Declared) Percent(containerWidth float64) float64 {
	switch d.Unit {
	case UnitPercent:
		return d.Value
	case UnitPixels:
		return PixelsToPercent(d.Value, containerWidth)
	default:
		return 0
	}
}

// String renders the declaration back into its attribute form.
func (d Declared) String() string {
	switch d.Unit {
	case UnitPercent:
		return strconv.FormatFloat(d.Value, 'f', -1, 64) + "%"
	case UnitPixels:
		return strconv.FormatFloat(d.Value, 'f', -1, 64) + "px"
	default:
		return ""
	}
}

// ParseWidth parses a width attribute. An empty string is an undeclared width.
func ParseWidth(s string) (Declared, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Declared{}, nil
	}

	unit := UnitPixels
	num := s
	switch {
	case strings.HasSuffix(s, "%"):
		unit = UnitPercent
		num = strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Declared{}, fmt.Errorf("invalid width %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Declared{}, fmt.Errorf("invalid width %q: not finite", s)
	}
	if v < 0 {
		return Declared{}, fmt.Errorf("invalid width %q: negative", s)
	}
	return Declared{Unit: unit, Value: v}, nil
}
