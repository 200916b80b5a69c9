package geometry

import (
	"math"
	"testing"
)

func TestPercentPixelConversion(t *testing.T) {
	tests := []struct {
		name  string
		pct   float64
		total float64
		want  float64
	}{
		{"half", 50, 800, 400},
		{"third", 100.0 / 3, 300, 100},
		{"zero container", 50, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentToPixels(tt.pct, tt.total)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PercentToPixels(%v, %v) = %v, want %v", tt.pct, tt.total, got, tt.want)
			}
			if tt.total > 0 {
				back := PixelsToPercent(got, tt.total)
				if math.Abs(back-tt.pct) > 1e-9 {
					t.Errorf("PixelsToPercent(%v, %v) = %v, want %v", got, tt.total, back, tt.pct)
				}
			}
		})
	}
}

func TestProximity(t *testing.T) {
	container := Rect{X: 10, Y: 0, Width: 100, Height: 20}

	if !NearLeftEdge(Point{X: 12, Y: 5}, container, 3) {
		t.Error("x=12 should be near the left edge at threshold 3")
	}
	if NearLeftEdge(Point{X: 14, Y: 5}, container, 3) {
		t.Error("x=14 should not be near the left edge at threshold 3")
	}
	if !NearRightEdge(Point{X: 108, Y: 5}, container, 3) {
		t.Error("x=108 should be near the right edge at threshold 3")
	}
	if !NearX(50, 51, 1) || NearX(50, 52, 1) {
		t.Error("NearX proximity boundary is wrong")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 1}
	if !r.Contains(Point{X: 0, Y: 0}) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(Point{X: 10, Y: 0}) {
		t.Error("right edge should be exclusive")
	}
	if r.Contains(Point{X: 5, Y: 1}) {
		t.Error("bottom edge should be exclusive")
	}
}

func TestParseWidth(t *testing.T) {
	tests := []struct {
		in      string
		want    Declared
		wantErr bool
	}{
		{"", Declared{}, false},
		{"30%", Declared{Unit: UnitPercent, Value: 30}, false},
		{" 12.5 % ", Declared{Unit: UnitPercent, Value: 12.5}, false},
		{"240px", Declared{Unit: UnitPixels, Value: 240}, false},
		{"240", Declared{Unit: UnitPixels, Value: 240}, false},
		{"wide", Declared{}, true},
		{"-5%", Declared{}, true},
		{"NaN%", Declared{}, true},
		{"Inf", Declared{}, true},
		{"inf%", Declared{}, true},
		{"1e400", Declared{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWidth(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWidth(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseWidth(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDeclaredPercent(t *testing.T) {
	d := Declared{Unit: UnitPixels, Value: 200}
	if got := d.Percent(800); got != 25 {
		t.Errorf("Percent(800) = %v, want 25", got)
	}
	if got := (Declared{}).Percent(800); got != 0 {
		t.Errorf("undeclared Percent = %v, want 0", got)
	}
	if got := (Declared{Unit: UnitPercent, Value: 30}).String(); got != "30%" {
		t.Errorf("String() = %q, want 30%%", got)
	}
}
