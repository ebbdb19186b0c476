package gamemath

import "math"

// RectContains reports whether pixel (px, py) lies in the rectangle with
// top-left (x, y) and size w x h. Pixels on the right and bottom bounds are
// outside.
func RectContains(x, y, w, h, px, py int) bool {
	return px >= x && px < x+w && py >= y && py < y+h
}

// OvalContains reports whether the center of pixel (px, py) lies in the
// ellipse inscribed in the rectangle (x, y, w, h).
func OvalContains(x, y, w, h, px, py int) bool {
	if !RectContains(x, y, w, h, px, py) {
		return false
	}
	rx, ry := float64(w)/2, float64(h)/2
	dx := (float64(px) + 0.5 - (float64(x) + rx)) / rx
	dy := (float64(py) + 0.5 - (float64(y) + ry)) / ry
	return dx*dx+dy*dy <= 1
}

// OvalRowSpan returns the first and last pixel columns of row py covered by
// the ellipse inscribed in (x, y, w, h), using the same test as
// OvalContains.
func OvalRowSpan(x, y, w, h, py int) (x0, x1 int, ok bool) {
	if w <= 0 || h <= 0 || py < y || py >= y+h {
		return 0, 0, false
	}
	rx, ry := float64(w)/2, float64(h)/2
	cx := float64(x) + rx
	dy := (float64(py) + 0.5 - (float64(y) + ry)) / ry
	if dy*dy > 1 {
		return 0, 0, false
	}
	half := rx * math.Sqrt(1-dy*dy)
	x0 = int(math.Ceil(cx - half - 0.5))
	x1 = int(math.Floor(cx + half - 0.5))
	// Floating point can land a pixel off either way; the containment test
	// is authoritative.
	for OvalContains(x, y, w, h, x0-1, py) {
		x0--
	}
	for OvalContains(x, y, w, h, x1+1, py) {
		x1++
	}
	for x0 <= x1 && !OvalContains(x, y, w, h, x0, py) {
		x0++
	}
	for x1 >= x0 && !OvalContains(x, y, w, h, x1, py) {
		x1--
	}
	return x0, x1, x0 <= x1
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
