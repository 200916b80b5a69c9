package tui

import "testing"

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name          string
		width         int
		height        int
		helpHeight    int
		wantContainer Region
		wantStatusY   int
		wantHelp      Region
	}{
		{
			name:          "standard terminal",
			width:         80,
			height:        24,
			helpHeight:    1,
			wantContainer: Region{X: 0, Y: 0, Width: 80, Height: 22},
			wantStatusY:   22,
			wantHelp:      Region{X: 0, Y: 23, Width: 80, Height: 1},
		},
		{
			name:          "expanded help",
			width:         120,
			height:        40,
			helpHeight:    4,
			wantContainer: Region{X: 0, Y: 0, Width: 120, Height: 35},
			wantStatusY:   35,
			wantHelp:      Region{X: 0, Y: 36, Width: 120, Height: 4},
		},
		{
			name:          "zero help height counts as one line",
			width:         80,
			height:        24,
			helpHeight:    0,
			wantContainer: Region{X: 0, Y: 0, Width: 80, Height: 22},
			wantStatusY:   22,
			wantHelp:      Region{X: 0, Y: 23, Width: 80, Height: 1},
		},
		{
			name:          "minimum height",
			width:         40,
			height:        3,
			helpHeight:    1,
			wantContainer: Region{X: 0, Y: 0, Width: 40, Height: 3}, // never below header plus two lines
			wantStatusY:   3,
			wantHelp:      Region{X: 0, Y: 4, Width: 40, Height: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := ComputeLayout(tt.width, tt.height, tt.helpHeight)

			if layout.Container != tt.wantContainer {
				t.Errorf("Container = %+v, want %+v", layout.Container, tt.wantContainer)
			}
			if layout.StatusBar.Y != tt.wantStatusY || layout.StatusBar.Height != 1 {
				t.Errorf("StatusBar = %+v, want Y=%d height 1", layout.StatusBar, tt.wantStatusY)
			}
			if layout.Help != tt.wantHelp {
				t.Errorf("Help = %+v, want %+v", layout.Help, tt.wantHelp)
			}
		})
	}
}

func TestRegionContains(t *testing.T) {
	r := Region{X: 2, Y: 1, Width: 3, Height: 2}
	tests := []struct {
		x, y int
		want bool
	}{
		{2, 1, true},
		{4, 2, true},
		{5, 1, false},
		{2, 3, false},
		{1, 1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
