package kernel

import "math"

// cellAccumulator collects per-pixel contributions for a single
// (orientation, translation) output cell and reduces them to the value
// added into the output buffer. diff2 and CC differ only in this
// reduction, so the coarse skeleton (runCoarse) is written once against
// this interface (the ScoreAccumulator trait of the redesign notes). The
// fine kernels do not use it; Diff2Fine and CCFine each accumulate inline.
type cellAccumulator interface {
	add(refReal, refImag, sigReal, sigImag, corr float64)
	result() float64
}

// diff2Cell accumulates a weighted sum of squared complex differences.
type diff2Cell struct {
	sum float64
}

func (c *diff2Cell) add(refReal, refImag, sigReal, sigImag, corr float64) {
	dr := refReal - sigReal
	di := refImag - sigImag
	c.sum += (dr*dr + di*di) * corr
}

func (c *diff2Cell) result() float64 { return c.sum }

// ccCell accumulates the weighted inner product and reference self-norm
// used by normalized cross-correlation, reducing to -weight/sqrt(norm).
type ccCell struct {
	weight float64
	norm   float64
}

func (c *ccCell) add(refReal, refImag, sigReal, sigImag, corr float64) {
	c.weight += (refReal*sigReal + refImag*sigImag) * corr
	c.norm += (refReal*refReal + refImag*refImag) * corr
}

func (c *ccCell) result() float64 {
	return -c.weight / math.Sqrt(c.norm)
}
