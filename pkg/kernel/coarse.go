package kernel

// projectAt dispatches to the correct projector arity for the given data/
// reference dimensionality, reading the 9 consecutive euler entries starting
// at eulerOff.
func projectAt(p Projector, data3D, ref3D bool, x, y, z int, eulers []float64, eulerOff int) (real, imag float64) {
	switch {
	case data3D:
		return p.Project3D(x, y, z,
			eulers[eulerOff], eulers[eulerOff+1], eulers[eulerOff+2],
			eulers[eulerOff+3], eulers[eulerOff+4], eulers[eulerOff+5],
			eulers[eulerOff+6], eulers[eulerOff+7], eulers[eulerOff+8])
	case ref3D:
		return p.Project3Dfrom2D(x, y,
			eulers[eulerOff], eulers[eulerOff+1],
			eulers[eulerOff+3], eulers[eulerOff+4],
			eulers[eulerOff+6], eulers[eulerOff+7])
	default:
		return p.Project2D(x, y,
			eulers[eulerOff], eulers[eulerOff+1],
			eulers[eulerOff+3], eulers[eulerOff+4])
	}
}

// CoarseParams bundles the inputs shared by Diff2Coarse and CCCoarse: a
// dense grid search over every orientation block and every translation.
type CoarseParams struct {
	GridSize         int
	Eulers           []float64
	TransX, TransY, TransZ []float64
	ImgReal, ImgImag []float64
	Corr             []float64
	Projector        Projector
	TranslationNum   int
	ImageSize        int
	EulersPerBlock   int
	Data3D           bool
	Ref3D            bool
}

// runCoarse implements the shared iteration geometry of §4.4/§4.6: for
// every orientation block, every pixel, every orientation in the block, and
// every translation, project the reference, apply the translation phase,
// and feed the result to a fresh cellAccumulator per (orientation,
// translation) cell. corrScale bakes in the 1/2 weighting diff2 applies
// that CC does not. out is accumulated into, never zeroed.
func runCoarse(p CoarseParams, corrScale float64, newCell func() cellAccumulator, out []float64) {
	imgX, imgY, imgZ, maxR := p.Projector.Extents()

	sx := buildSincosAxis(p.TransX, imgX)
	sy := buildSincosAxis(p.TransY, imgY)
	var sz sincosTable
	if p.Data3D {
		sz = buildSincosAxis(p.TransZ, imgZ)
	}

	cells := make([]cellAccumulator, p.EulersPerBlock*p.TranslationNum)

	for block := 0; block < p.GridSize; block++ {
		for i := range cells {
			cells[i] = newCell()
		}
		eulerBase := block * p.EulersPerBlock * 9

		for pixel := 0; pixel < p.ImageSize; pixel++ {
			x, y, z := pixelXYZ(pixel, imgX, imgY, imgZ, maxR)
			corr := p.Corr[pixel] * corrScale
			sigReal, sigImag := p.ImgReal[pixel], p.ImgImag[pixel]

			for e := 0; e < p.EulersPerBlock; e++ {
				refReal, refImag := projectAt(p.Projector, p.Data3D, p.Ref3D, x, y, z, p.Eulers, eulerBase+e*9)

				for i := 0; i < p.TranslationNum; i++ {
					var ss, cc float64
					if p.Data3D {
						ss, cc = shift3D(sx, sy, sz, i, x, y, z)
					} else {
						ss, cc = shift2D(sx, sy, i, x, y)
					}
					shReal, shImag := applyShift(ss, cc, sigReal, sigImag)
					cells[e*p.TranslationNum+i].add(refReal, refImag, shReal, shImag, corr)
				}
			}
		}

		base := block * p.EulersPerBlock * p.TranslationNum
		for e := 0; e < p.EulersPerBlock; e++ {
			for i := 0; i < p.TranslationNum; i++ {
				out[base+e*p.TranslationNum+i] += cells[e*p.TranslationNum+i].result()
			}
		}
	}
}

// Diff2Coarse scores every orientation block against every translation with
// the weighted squared-difference metric. Eulers is laid out as
// grid_size*eulersPerBlock consecutive 3x3 matrices (9 scalars each). Out
// must be at least grid_size*eulersPerBlock*translationNum long and is
// accumulated into starting from its current contents.
func Diff2Coarse(p CoarseParams, out []float64) {
	runCoarse(p, 0.5, func() cellAccumulator { return &diff2Cell{} }, out)
}

// CCCoarse scores every orientation block against every translation with
// the normalized cross-correlation metric, emitting -weight/sqrt(norm) per
// cell. Layout and accumulator semantics match Diff2Coarse. expLocalSqrtXi2
// is accepted but never read, matching CCFine and the documented behavior
// of the CC kernels generally (see the design notes).
func CCCoarse(p CoarseParams, expLocalSqrtXi2 float64, out []float64) {
	_ = expLocalSqrtXi2
	runCoarse(p, 1.0, func() cellAccumulator { return &ccCell{} }, out)
}
