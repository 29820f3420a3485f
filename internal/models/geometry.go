// Package models holds the plain data types shared across the alignment
// kernels, the reference builder, and the driver: image geometry,
// translations, and the job tables consumed by the fine search kernels.
package models

// Geometry describes the extents of a Fourier-domain image or volume and
// the radial cutoff beyond which samples are not considered.
//
// ImgZ is 1 for a 2D image. Size is the flattened pixel count ImgX*ImgY*ImgZ.
type Geometry struct {
	ImgX, ImgY, ImgZ int
	MaxR             int
}

// Size returns the flattened linear extent of the geometry.
func (g Geometry) Size() int {
	return g.ImgX * g.ImgY * g.ImgZ
}

// Is3D reports whether the geometry describes a volume rather than a 2D image.
func (g Geometry) Is3D() bool {
	return g.ImgZ > 1
}

// Translation is a shift vector in pixel units. Z is ignored for 2D data.
type Translation struct {
	X, Y, Z float64
}

// JobTable is the flattened set of fine-search jobs handed to the fine
// kernels: parallel arrays rather than a slice of structs, matching the
// layout the kernels iterate over directly. Job b is one contiguous run of
// translations paired with a single orientation: its translations are
// TransIdx[JobIdx[b] : JobIdx[b]+JobNum[b]] and its orientation index is
// RotIdx[JobIdx[b]].
type JobTable struct {
	RotIdx   []int
	TransIdx []int
	JobIdx   []int
	JobNum   []int
}

// NumJobs returns the number of scheduled jobs (len(JobIdx)).
func (t JobTable) NumJobs() int {
	return len(t.JobIdx)
}

// TotalTranslations returns the total number of (orientation,translation)
// pairs scheduled across all jobs.
func (t JobTable) TotalTranslations() int {
	n := 0
	for _, c := range t.JobNum {
		n += c
	}
	return n
}
