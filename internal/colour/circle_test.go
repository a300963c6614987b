package colour

import "testing"

func TestIsInsideCircle(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{name: "centre", x: 255, y: 255, want: true},
		{name: "right boundary", x: 511, y: 255, want: true},
		{name: "top boundary", x: 255, y: -1, want: true},
		{name: "left edge", x: 0, y: 255, want: true},
		{name: "diagonal inside", x: 436, y: 436, want: true},
		{name: "diagonal outside", x: 437, y: 437, want: false},
		{name: "top left corner", x: 0, y: 0, want: false},
		{name: "bottom right corner", x: 511, y: 511, want: false},
		{name: "beyond right boundary", x: 512, y: 255, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInsideCircle(tt.x, tt.y); got != tt.want {
				t.Errorf("IsInsideCircle(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestIsInsideCircleMatchesDistance(t *testing.T) {
	const r2 = 256 * 256
	for y := 0; y < DefaultCanvasSize; y++ {
		for x := 0; x < DefaultCanvasSize; x++ {
			dx, dy := x-255, y-255
			want := dx*dx+dy*dy <= r2
			if got := IsInsideCircle(x, y); got != want {
				t.Fatalf("IsInsideCircle(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestNewCircle(t *testing.T) {
	c := NewCircle(64)
	if c.CX != 31 || c.CY != 31 {
		t.Errorf("centre = (%d, %d), want (31, 31)", c.CX, c.CY)
	}
	if c.Radius != 32 {
		t.Errorf("radius = %v, want 32", c.Radius)
	}
	if !c.Contains(63, 31) {
		t.Error("expected boundary point (63, 31) to be inside")
	}
	if c.Contains(0, 0) {
		t.Error("expected corner (0, 0) to be outside")
	}
}
