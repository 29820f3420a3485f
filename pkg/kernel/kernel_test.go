package kernel

import "cryoalign/internal/models"

// constProjector returns the same (real,imag) pair for every coordinate,
// used to exercise the "matching reference" and "zero reference" scenarios
// without needing a real Fourier-domain volume.
type constProjector struct {
	imgX, imgY, imgZ, maxR int
	real, imag             float64
}

func (p constProjector) Extents() (int, int, int, int) { return p.imgX, p.imgY, p.imgZ, p.maxR }

func (p constProjector) Project2D(x, y int, m00, m01, m10, m11 float64) (float64, float64) {
	return p.real, p.imag
}

func (p constProjector) Project3Dfrom2D(x, y int, m00, m01, m10, m11, m20, m21 float64) (float64, float64) {
	return p.real, p.imag
}

func (p constProjector) Project3D(x, y, z int, m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) (float64, float64) {
	return p.real, p.imag
}

// signalProjector echoes the observed signal back as the reference, used to
// verify the "reference equals signal" identity (invariant 3).
type signalProjector struct {
	imgX, imgY, imgZ, maxR int
	real, imag             []float64
}

func (p signalProjector) Extents() (int, int, int, int) { return p.imgX, p.imgY, p.imgZ, p.maxR }

func (p signalProjector) at(x, y int) (float64, float64) {
	iy := y
	if iy < 0 {
		iy += p.imgY
	}
	pixel := iy*p.imgX + x
	return p.real[pixel], p.imag[pixel]
}

func (p signalProjector) Project2D(x, y int, m00, m01, m10, m11 float64) (float64, float64) {
	return p.at(x, y)
}

func (p signalProjector) Project3Dfrom2D(x, y int, m00, m01, m10, m11, m20, m21 float64) (float64, float64) {
	return p.at(x, y)
}

func (p signalProjector) Project3D(x, y, z int, m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) (float64, float64) {
	return p.at(x, y)
}

// tableProjector serves an arbitrary per-pixel (real,imag) table, letting
// tests inject a reference that differs from the signal at chosen pixels
// only, independent of the signal array itself.
type tableProjector struct {
	imgX, imgY, imgZ, maxR int
	real, imag             []float64
}

func (p tableProjector) Extents() (int, int, int, int) { return p.imgX, p.imgY, p.imgZ, p.maxR }

func (p tableProjector) at(x, y int) (float64, float64) {
	iy := y
	if iy < 0 {
		iy += p.imgY
	}
	pixel := iy*p.imgX + x
	return p.real[pixel], p.imag[pixel]
}

func (p tableProjector) Project2D(x, y int, m00, m01, m10, m11 float64) (float64, float64) {
	return p.at(x, y)
}

func (p tableProjector) Project3Dfrom2D(x, y int, m00, m01, m10, m11, m20, m21 float64) (float64, float64) {
	return p.at(x, y)
}

func (p tableProjector) Project3D(x, y, z int, m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) (float64, float64) {
	return p.at(x, y)
}

// identityEulers returns n copies of the identity rotation matrix flattened
// into a row-major 9*n scalar slice.
func identityEulers(n int) []float64 {
	e := make([]float64, 9*n)
	for i := 0; i < n; i++ {
		off := i * 9
		e[off+0], e[off+4], e[off+8] = 1, 1, 1
	}
	return e
}

// singleJobTable builds a job table with one job covering all translations
// against orientation 0, matching the fine kernels' expected layout.
func singleJobTable(translationNum int) models.JobTable {
	transIdx := make([]int, translationNum)
	for i := range transIdx {
		transIdx[i] = i
	}
	return models.JobTable{
		RotIdx:   []int{0},
		TransIdx: transIdx,
		JobIdx:   []int{0},
		JobNum:   []int{translationNum},
	}
}
