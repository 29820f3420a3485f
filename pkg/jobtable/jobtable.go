// Package jobtable builds the fine-search job list a coarse score grid is
// reduced into: for each orientation, the translations spatially nearest
// to that orientation's coarse peak are kept for refinement, using a
// KD-tree nearest-neighbor search over the translation grid.
package jobtable

import (
	"cryoalign/internal/models"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// transPoint is a translation-space sample tagged with its index into the
// coarse score/translation arrays.
type transPoint struct {
	X, Y, Z float64
	Idx     int
}

func (p transPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(transPoint)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	case 2:
		return p.Z - q.Z
	default:
		panic("illegal dimension")
	}
}

func (p transPoint) Dims() int { return 3 }

func (p transPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(transPoint)
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return dx*dx + dy*dy + dz*dz
}

// transPoints is a kdtree.Interface over a slice of transPoint.
type transPoints []transPoint

func (p transPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p transPoints) Len() int                              { return len(p) }
func (p transPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

func (p transPoints) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(transPlane{transPoints: p, Dim: d}, kdtree.MedianOfRandoms(transPlane{transPoints: p, Dim: d}, 100))
}

type transPlane struct {
	transPoints
	kdtree.Dim
}

func (p transPlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.transPoints[i].X < p.transPoints[j].X
	case 1:
		return p.transPoints[i].Y < p.transPoints[j].Y
	case 2:
		return p.transPoints[i].Z < p.transPoints[j].Z
	default:
		panic("illegal dimension")
	}
}

func (p transPlane) Slice(start, end int) kdtree.SortSlicer {
	return transPlane{transPoints: p.transPoints[start:end], Dim: p.Dim}
}

func (p transPlane) Swap(i, j int) {
	p.transPoints[i], p.transPoints[j] = p.transPoints[j], p.transPoints[i]
}

// Mode selects which coarse metric a peak is picked by. Diff2 peaks are
// the minimum score; CC peaks are the minimum (most negative) score too,
// since both accumulators report a smaller-is-better value, but the
// selector is kept explicit so future score conventions don't have to
// guess.
type Mode int

const (
	ModeDiff2 Mode = iota
	ModeCC
)

// BuildFine reduces a coarse score grid, laid out orientation-major with
// translationNum entries per orientation, into a fine job table: for each
// orientation, the keep translations spatially nearest to that
// orientation's peak score are kept as jobs. translations must have
// exactly translationNum entries and is shared across every orientation,
// matching the coarse kernels' translation-grid contract.
func BuildFine(scores []float64, orientationNum, translationNum int, translations []models.Translation, keep int, mode Mode) models.JobTable {
	var jobs models.JobTable
	if orientationNum <= 0 || translationNum <= 0 || keep <= 0 || len(translations) != translationNum {
		return jobs
	}
	if keep > translationNum {
		keep = translationNum
	}

	points := make(transPoints, translationNum)
	for i, t := range translations {
		points[i] = transPoint{X: t.X, Y: t.Y, Z: t.Z, Idx: i}
	}
	tree := kdtree.New(points, true)

	_ = mode // both conventions currently pick the minimum score as the peak

	for o := 0; o < orientationNum; o++ {
		base := o * translationNum
		peak := base
		for i := base + 1; i < base+translationNum; i++ {
			if scores[i] < scores[peak] {
				peak = i
			}
		}
		peakIdx := peak - base

		keeper := kdtree.NewNKeeper(keep)
		tree.NearestSet(keeper, points[peakIdx])

		jobIdx := len(jobs.TransIdx)
		count := 0
		for _, item := range keeper.Heap {
			tp, ok := item.Comparable.(transPoint)
			if !ok {
				continue
			}
			jobs.TransIdx = append(jobs.TransIdx, tp.Idx)
			// RotIdx is parallel to TransIdx; only position jobIdx is ever
			// read (via RotIdx[JobIdx[b]]), but every slot in the job's run
			// carries the same orientation for consistency.
			jobs.RotIdx = append(jobs.RotIdx, o)
			count++
		}
		jobs.JobIdx = append(jobs.JobIdx, jobIdx)
		jobs.JobNum = append(jobs.JobNum, count)
	}

	return jobs
}
