package fourier

import (
	"math"
	"math/cmplx"
)

// radix2FFT computes the forward discrete Fourier transform of x using a
// recursive Cooley-Tukey decomposition. len(x) must be a power of two;
// BuildReference enforces this on every extent radix2FFT is applied along.
func radix2FFT(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		out := make([]complex128, n)
		copy(out, x)
		return out
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	evenT := radix2FFT(even)
	oddT := radix2FFT(odd)

	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		twiddle := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n))) * oddT[k]
		out[k] = evenT[k] + twiddle
		out[k+n/2] = evenT[k] - twiddle
	}
	return out
}
