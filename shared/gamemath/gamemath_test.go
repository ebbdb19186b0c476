package gamemath

import "testing"

func TestRectContainsBounds(t *testing.T) {
	cases := []struct {
		px, py int
		want   bool
	}{
		{10, 20, true},
		{14, 22, true},
		{15, 20, false}, // right bound is outside
		{10, 23, false}, // bottom bound is outside
		{9, 20, false},
		{10, 19, false},
	}
	for _, c := range cases {
		if got := RectContains(10, 20, 5, 3, c.px, c.py); got != c.want {
			t.Errorf("RectContains(10,20,5,3, %d,%d) = %v, want %v", c.px, c.py, got, c.want)
		}
	}
}

func TestOvalContains(t *testing.T) {
	// 20x10 ellipse at the origin.
	cases := []struct {
		name   string
		px, py int
		want   bool
	}{
		{"center", 10, 5, true},
		{"top_middle", 10, 0, true},
		{"left_middle", 0, 5, true},
		{"corner", 0, 0, false},
		{"far_corner", 19, 9, false},
		{"outside_box", 20, 5, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := OvalContains(0, 0, 20, 10, c.px, c.py); got != c.want {
				t.Fatalf("OvalContains(%d, %d) = %v, want %v", c.px, c.py, got, c.want)
			}
		})
	}
}

func TestOvalRowSpanMatchesContains(t *testing.T) {
	shapes := [][4]int{
		{0, 0, 20, 10},
		{5, 7, 1, 1},
		{-3, 2, 7, 13},
		{0, 0, 40, 3},
	}
	for _, s := range shapes {
		x, y, w, h := s[0], s[1], s[2], s[3]
		for py := y - 1; py <= y+h; py++ {
			x0, x1, ok := OvalRowSpan(x, y, w, h, py)
			for px := x - 1; px <= x+w; px++ {
				in := ok && px >= x0 && px <= x1
				if want := OvalContains(x, y, w, h, px, py); in != want {
					t.Fatalf("oval %v row %d: span (%d, %d, %v) disagrees with OvalContains at x %d", s, py, x0, x1, ok, px)
				}
			}
		}
	}
}

func TestPixelsPerTick(t *testing.T) {
	cases := []struct {
		rate, divider float64
		want          int
	}{
		{4, 2, 2},
		{5.8, 2, 2},
		{6, 2, 3},
		{9, 6, 1},
		{90.2, 6, 15},
		{4, 0, 0},
	}
	for _, c := range cases {
		if got := PixelsPerTick(c.rate, c.divider); got != c.want {
			t.Errorf("PixelsPerTick(%v, %v) = %d, want %d", c.rate, c.divider, got, c.want)
		}
	}
}

func TestAccelerateHoldsPastTerminal(t *testing.T) {
	rate := 9.0
	prev := rate
	for i := 0; i < 1000; i++ {
		rate = Accelerate(rate, 0.2, 15, 6)
		if rate < prev {
			t.Fatalf("rate decreased from %v to %v", prev, rate)
		}
		prev = rate
	}
	if rate > 15*6+0.2+1e-9 {
		t.Fatalf("rate %v passed terminal", rate)
	}
	if PixelsPerTick(rate, 6) != 15 {
		t.Fatalf("terminal pixels per tick = %d, want 15", PixelsPerTick(rate, 6))
	}
}

func TestClampInt(t *testing.T) {
	if ClampInt(300, 0, 255) != 255 || ClampInt(-4, 0, 255) != 0 || ClampInt(128, 0, 255) != 128 {
		t.Fatalf("ClampInt out of range")
	}
}
