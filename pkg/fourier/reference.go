package fourier

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Reference is a dense Fourier-domain reference (2D image or 3D volume)
// stored as two parallel real arrays, laid out with the same linear
// index convention the scoring kernels use: p = z*imgX*imgY + y*imgX + x,
// with frequency index k above imgN/2 representing the negative frequency
// k-imgN.
type Reference struct {
	Real, Imag       []float64
	ImgX, ImgY, ImgZ int
	MaxR             int
}

// BuildReference runs a row/column(/depth) FFT over a real-space density to
// produce its Fourier-domain reference, with a third (depth) pass for
// volumes. Each
// extent along which a complex pass runs (every extent but the innermost,
// which uses gonum's real-input FFT) must be a power of two.
func BuildReference(density []float64, imgX, imgY, imgZ, maxR int) (*Reference, error) {
	if imgX <= 0 || imgY <= 0 || imgZ <= 0 {
		return nil, fmt.Errorf("fourier: non-positive extent (%d,%d,%d)", imgX, imgY, imgZ)
	}
	if len(density) != imgX*imgY*imgZ {
		return nil, fmt.Errorf("fourier: density length %d does not match extents %dx%dx%d", len(density), imgX, imgY, imgZ)
	}
	if !isPowerOfTwo(imgY) || (imgZ > 1 && !isPowerOfTwo(imgZ)) {
		return nil, fmt.Errorf("fourier: imgY and imgZ must be powers of two, got %d,%d", imgY, imgZ)
	}

	spectrum := make([]complex128, imgX*imgY*imgZ)

	rowFFT := fourier.NewFFT(imgX)
	rowBuf := make([]float64, imgX)
	for z := 0; z < imgZ; z++ {
		for y := 0; y < imgY; y++ {
			base := z*imgX*imgY + y*imgX
			copy(rowBuf, density[base:base+imgX])
			half := rowFFT.Coefficients(nil, rowBuf)
			expandHermitian(spectrum[base:base+imgX], half, imgX)
		}
	}

	col := make([]complex128, imgY)
	for z := 0; z < imgZ; z++ {
		for x := 0; x < imgX; x++ {
			for y := 0; y < imgY; y++ {
				col[y] = spectrum[z*imgX*imgY+y*imgX+x]
			}
			transformed := radix2FFT(col)
			for y := 0; y < imgY; y++ {
				spectrum[z*imgX*imgY+y*imgX+x] = transformed[y]
			}
		}
	}

	if imgZ > 1 {
		depth := make([]complex128, imgZ)
		for y := 0; y < imgY; y++ {
			for x := 0; x < imgX; x++ {
				for z := 0; z < imgZ; z++ {
					depth[z] = spectrum[z*imgX*imgY+y*imgX+x]
				}
				transformed := radix2FFT(depth)
				for z := 0; z < imgZ; z++ {
					spectrum[z*imgX*imgY+y*imgX+x] = transformed[z]
				}
			}
		}
	}

	ref := &Reference{
		Real: make([]float64, len(spectrum)),
		Imag: make([]float64, len(spectrum)),
		ImgX: imgX, ImgY: imgY, ImgZ: imgZ,
		MaxR: maxR,
	}
	for i, c := range spectrum {
		ref.Real[i] = real(c)
		ref.Imag[i] = imag(c)
	}
	return ref, nil
}

// expandHermitian rebuilds a full-length complex row from the half-spectrum
// gonum's real FFT returns, using the conjugate symmetry a real signal's
// spectrum obeys: X[n-k] = conj(X[k]).
func expandHermitian(dst []complex128, half []complex128, n int) {
	for k := 0; k < len(half); k++ {
		dst[k] = half[k]
	}
	for k := len(half); k < n; k++ {
		dst[k] = cmplxConj(half[n-k])
	}
}

func cmplxConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
