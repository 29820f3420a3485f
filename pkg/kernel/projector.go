package kernel

// Projector samples a Fourier-domain reference at a rotated coordinate,
// producing a complex value (real, imag). Implementations must be
// deterministic and reentrant, and must return (0,0) for any coordinate
// outside the reference's sampled band.
//
// Project2D is used when both the reference and the data are 2D (4 rotation
// entries). Project3Dfrom2D slices a 3D reference into a 2D plane using the
// first two rotation columns (6 entries) to score against 2D data.
// Project3D performs full 3D-to-3D resampling (9 entries) against 3D data.
type Projector interface {
	Extents() (imgX, imgY, imgZ, maxR int)

	Project2D(x, y int, m00, m01, m10, m11 float64) (real, imag float64)
	Project3Dfrom2D(x, y int, m00, m01, m10, m11, m20, m21 float64) (real, imag float64)
	Project3D(x, y, z int, m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) (real, imag float64)
}
