package kernel

import "math"

// sqrtHalf returns sqrt(v*0.5), the per-pixel scale factor the fine diff2
// kernel folds into both the reference and the signal so that squaring
// their difference already carries the 1/2-weighted correlation term.
func sqrtHalf(v float64) float64 {
	return math.Sqrt(v * 0.5)
}

// sqrtStrict returns sqrt(v) without guarding v==0; a zero norm is a
// documented numerical caller-responsibility case (see §7) that is allowed
// to flow an infinity into the output, not a condition the kernel corrects.
func sqrtStrict(v float64) float64 {
	return math.Sqrt(v)
}
