package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	flavor catppuccin.Flavor
}

func NewStyles(themeName string) *Styles {
	flavor := flavorFromName(themeName)
	return &Styles{flavor: flavor}
}

func flavorFromName(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	case "mocha":
		return catppuccin.Mocha
	default:
		return catppuccin.Mocha
	}
}

func (s *Styles) color(c catppuccin.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex)
}

// HeaderStyle is the header row of a slot. The focused slot is accented.
func (s *Styles) HeaderStyle(focused bool) lipgloss.Style {
	st := lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Text())).
		Background(s.color(s.flavor.Surface0()))
	if focused {
		st = st.Background(s.color(s.flavor.Surface2())).Bold(true)
	}
	return st
}

// TargetStyle marks the header a dragged panel would stack onto.
func (s *Styles) TargetStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Base())).
		Background(s.color(s.flavor.Green())).
		Bold(true)
}

func (s *Styles) TabStyle(active bool) lipgloss.Style {
	if active {
		return lipgloss.NewStyle().
			Foreground(s.color(s.flavor.Base())).
			Background(s.color(s.flavor.Mauve())).
			Bold(true)
	}
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Subtext0())).
		Background(s.color(s.flavor.Surface1()))
}

func (s *Styles) ControlStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Peach())).
		Background(s.color(s.flavor.Surface0()))
}

// SplitterStyle is the boundary column between two slots.
func (s *Styles) SplitterStyle(active bool) lipgloss.Style {
	if active {
		return lipgloss.NewStyle().Foreground(s.color(s.flavor.Yellow())).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(s.color(s.flavor.Surface1()))
}

func (s *Styles) PreviewStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.color(s.flavor.Green())).Bold(true)
}

func (s *Styles) ProxyStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Base())).
		Background(s.color(s.flavor.Teal())).
		Bold(true)
}

func (s *Styles) StatusBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Subtext1())).
		Background(s.color(s.flavor.Mantle()))
}

func (s *Styles) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Overlay0()))
}

func (s *Styles) InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Text()))
}

func (s *Styles) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Teal()))
}

func (s *Styles) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Red())).
		Bold(true)
}

// LevelStyle colors a log line by its level.
func (s *Styles) LevelStyle(level string) lipgloss.Style {
	switch level {
	case "DEBUG":
		return lipgloss.NewStyle().Foreground(s.color(s.flavor.Overlay1()))
	case "WARN":
		return lipgloss.NewStyle().Foreground(s.color(s.flavor.Yellow()))
	case "ERROR":
		return s.ErrorStyle()
	default:
		return s.InfoStyle()
	}
}
