// pattern: Functional Core

package layout

import (
	"math"

	"dockrow/internal/geometry"
)

// Distribute assigns initial widths from the declared widths of the
// top-level panels. Explicit percentages and converted pixel widths are
// placed first, undeclared panels split what is left evenly and any
// deviation from 100% lands on a single panel. Minimum widths are applied
// last by raising each panel that falls below its floor; the row is not
// renormalized afterwards.
func Distribute(m *Model, containerWidth float64) {
	panels := m.TopLevel()
	if len(panels) == 0 {
		return
	}

	var used float64
	var undeclared []*Panel
	for _, p := range panels {
		if p.Declared.IsSet() {
			p.Width = p.Declared.Percent(containerWidth)
			p.Flex = FlexFixed
			used += p.Width
			continue
		}
		p.Flex = FlexGrow
		undeclared = append(undeclared, p)
	}

	if len(undeclared) > 0 {
		share := math.Max(0, 100-used) / float64(len(undeclared))
		for _, p := range undeclared {
			p.Width = share
		}
	}

	correctSum(panels)

	for _, p := range panels {
		if floor := geometry.MinPercent(p.MinWidth, containerWidth); p.Width < floor {
			p.Width = floor
		}
	}
}

// correctSum applies the full deviation from 100% to one panel: the first
// undeclared one, else the first percent-declared one, else the first.
func correctSum(panels []*Panel) {
	var total float64
	for _, p := range panels {
		total += p.Width
	}
	diff := 100 - total
	if math.Abs(diff) <= geometry.Epsilon {
		return
	}
	target := correctionTarget(panels)
	target.Width += diff
}

func correctionTarget(panels []*Panel) *Panel {
	for _, p := range panels {
		if !p.Declared.IsSet() {
			return p
		}
	}
	for _, p := range panels {
		if p.Declared.Unit == geometry.UnitPercent {
			return p
		}
	}
	return panels[0]
}

// Normalize scales the top-level widths proportionally so they sum to 100%.
// A row with no width at all is split evenly.
func Normalize(m *Model) {
	panels := m.TopLevel()
	if len(panels) == 0 {
		return
	}
	sum := m.WidthSum()
	if sum <= geometry.Epsilon {
		Equalize(m)
		return
	}
	if math.Abs(sum-100) > geometry.Epsilon {
		scale := 100 / sum
		for _, p := range panels {
			p.Width *= scale
		}
	}
	correctSum(panels)
}

// Equalize gives every top-level panel an equal share of the row.
func Equalize(m *Model) {
	panels := m.TopLevel()
	if len(panels) == 0 {
		return
	}
	share := 100 / float64(len(panels))
	for _, p := range panels {
		p.Width = share
	}
}

// EnforceMinimums raises every top-level panel below its minimum width and
// takes the difference from panels that have room above theirs, in
// proportion to that room. Rows whose minimums cannot fit are left alone.
func EnforceMinimums(m *Model, containerWidth float64) {
	panels := m.TopLevel()
	if len(panels) == 0 || containerWidth <= 0 {
		return
	}

	floors := make([]float64, len(panels))
	var floorTotal float64
	for i, p := range panels {
		floors[i] = geometry.MinPercent(p.MinWidth, containerWidth)
		floorTotal += floors[i]
	}
	if floorTotal > 100+geometry.Epsilon {
		return
	}

	var deficit float64
	for i, p := range panels {
		if p.Width < floors[i] {
			deficit += floors[i] - p.Width
			p.Width = floors[i]
		}
	}
	if deficit <= 0 {
		return
	}

	var slack float64
	for i, p := range panels {
		slack += math.Max(0, p.Width-floors[i])
	}
	if slack <= 0 {
		return
	}
	for i, p := range panels {
		room := math.Max(0, p.Width-floors[i])
		p.Width -= deficit * room / slack
	}
}

// SyncMembers copies each host's width, flex mode and maximized flag onto
// its stack members.
func SyncMembers(m *Model) {
	for host, g := range m.groups {
		hp := m.panels[host]
		for _, mid := range g.MemberIDs {
			mp := m.panels[mid]
			mp.Width = hp.Width
			mp.Flex = hp.Flex
			mp.Maximized = hp.Maximized
		}
	}
}

// Settle restores the width invariants after a structural change: the
// row is rescaled to 100%, minimums are enforced and stack members follow
// their hosts.
func Settle(m *Model, containerWidth float64) {
	Normalize(m)
	EnforceMinimums(m, containerWidth)
	SyncMembers(m)
}
