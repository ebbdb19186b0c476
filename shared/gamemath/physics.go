package gamemath

// PixelsPerTick is the whole number of pixels a fall rate covers in one
// timer tick.
func PixelsPerTick(rate, divider float64) int {
	if divider <= 0 {
		return 0
	}
	return int(rate / divider)
}

// Accelerate adds step to rate while rate has not passed terminal*divider.
// Once past the bound the rate holds.
func Accelerate(rate, step, terminal, divider float64) float64 {
	if rate <= terminal*divider {
		return rate + step
	}
	return rate
}
