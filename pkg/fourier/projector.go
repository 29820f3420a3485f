package fourier

import (
	"math"

	"cryoalign/pkg/kernel"
)

// RefProjector implements kernel.Projector over a dense Fourier-domain
// Reference by nearest-lattice-point sampling of the rotated coordinate.
// It satisfies the projector contract by construction: sampling is a pure
// function of its arguments and the Reference it was built from, and any
// coordinate whose rounded component along some axis exceeds maxR in
// magnitude yields (0,0).
type RefProjector struct {
	ref *Reference
}

var _ kernel.Projector = RefProjector{}

// NewRefProjector wraps ref for use as a kernel.Projector.
func NewRefProjector(ref *Reference) RefProjector {
	return RefProjector{ref: ref}
}

// Extents reports the wrapped reference's geometry.
func (p RefProjector) Extents() (imgX, imgY, imgZ, maxR int) {
	return p.ref.ImgX, p.ref.ImgY, p.ref.ImgZ, p.ref.MaxR
}

// Project2D samples a 2D reference under a 2x2 rotation.
func (p RefProjector) Project2D(x, y int, m00, m01, m10, m11 float64) (real, imag float64) {
	fx, fy := float64(x), float64(y)
	sx := m00*fx + m01*fy
	sy := m10*fx + m11*fy
	return p.sample2D(sx, sy)
}

// Project3Dfrom2D slices a 3D reference into a 2D plane using the first two
// rotation columns.
func (p RefProjector) Project3Dfrom2D(x, y int, m00, m01, m10, m11, m20, m21 float64) (real, imag float64) {
	fx, fy := float64(x), float64(y)
	sx := m00*fx + m01*fy
	sy := m10*fx + m11*fy
	sz := m20*fx + m21*fy
	return p.sample3D(sx, sy, sz)
}

// Project3D performs full 3D-to-3D resampling.
func (p RefProjector) Project3D(x, y, z int, m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) (real, imag float64) {
	fx, fy, fz := float64(x), float64(y), float64(z)
	sx := m00*fx + m01*fy + m02*fz
	sy := m10*fx + m11*fy + m12*fz
	sz := m20*fx + m21*fy + m22*fz
	return p.sample3D(sx, sy, sz)
}

func (p RefProjector) sample2D(sx, sy float64) (real, imag float64) {
	rx, ry := int(math.Round(sx)), int(math.Round(sy))
	if !withinBand(rx, p.ref.MaxR) || !withinBand(ry, p.ref.MaxR) {
		return 0, 0
	}
	idx := wrapIndex(ry, p.ref.ImgY)*p.ref.ImgX + wrapIndex(rx, p.ref.ImgX)
	return p.ref.Real[idx], p.ref.Imag[idx]
}

func (p RefProjector) sample3D(sx, sy, sz float64) (real, imag float64) {
	rx, ry, rz := int(math.Round(sx)), int(math.Round(sy)), int(math.Round(sz))
	if !withinBand(rx, p.ref.MaxR) || !withinBand(ry, p.ref.MaxR) || !withinBand(rz, p.ref.MaxR) {
		return 0, 0
	}
	idx := wrapIndex(rz, p.ref.ImgZ)*p.ref.ImgX*p.ref.ImgY + wrapIndex(ry, p.ref.ImgY)*p.ref.ImgX + wrapIndex(rx, p.ref.ImgX)
	return p.ref.Real[idx], p.ref.Imag[idx]
}

// withinBand reports whether one signed coordinate component lies within
// [-maxR,maxR].
func withinBand(v, maxR int) bool {
	if v < 0 {
		v = -v
	}
	return v <= maxR
}

// wrapIndex maps a signed coordinate into its storage index within
// [0,extent), folding negative frequencies to the tail half of the extent.
func wrapIndex(v, extent int) int {
	if v < 0 {
		v += extent
	}
	return v
}
