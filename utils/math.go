package utils

import (
	"math"
)

// ClipNonNegative writes max(src[i], 0) into dst
func ClipNonNegative(dst, src []float64) {
	if len(dst) < len(src) {
		panic("destination shorter than source")
	}
	for i, val := range src {
		dst[i] = math.Max(val, 0.)
	}
}

// POW raises x to a real power, taking the multiply path for small integer exponents
// which dominate stoichiometric reaction orders
func POW(x, pp float64) (y float64) {
	var (
		p       = int(pp)
		flipped bool
	)
	if float64(p) != pp || p > 8 || p < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -p
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, pp)
	return
}
