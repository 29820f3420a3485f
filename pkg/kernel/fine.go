package kernel

import "cryoalign/internal/models"

// FineParams bundles the inputs shared by Diff2Fine and CCFine: a sparse
// job-list search where each job pairs one orientation with a contiguous
// run of translations.
type FineParams struct {
	Eulers                 []float64
	ImgReal, ImgImag       []float64
	TransX, TransY, TransZ []float64
	Projector              Projector
	Corr                   []float64
	Jobs                   models.JobTable
	Data3D                 bool
	Ref3D                  bool
}

// forEachFineRow walks the (z,)y rows of the reference grid in the order
// the fine kernels require, invoking visit once per row with the row's
// signed y (and z, 0 for 2D data) coordinate and its [xstart,xend) range,
// applying the polar-skip rule of §4.1 at every level.
func forEachFineRow(imgX, imgY, imgZ, maxR int, data3D bool, visit func(y, z, xstart, xend int)) {
	if !data3D {
		for iy := 0; iy < imgY; iy++ {
			y, xstart, xend := resolveAxis(iy, imgY, maxR, 0, imgX)
			visit(y, 0, xstart, xend)
		}
		return
	}
	for iz := 0; iz < imgZ; iz++ {
		z, xstartZ, xendZ := resolveAxis(iz, imgZ, maxR, 0, imgX)
		for iy := 0; iy < imgY; iy++ {
			y, xstart, xend := resolveAxis(iy, imgY, maxR, xstartZ, xendZ)
			visit(y, z, xstart, xend)
		}
	}
}

// Diff2Fine scores each job's translations against its orientation with the
// weighted squared-difference metric, row by row, applying the polar-skip
// rule. sumInit is added exactly once to every emitted score. Out must be
// long enough to hold every job's outputs at job_idx[b]+i and is accumulated
// into.
func Diff2Fine(p FineParams, sumInit float64, out []float64) {
	imgX, imgY, imgZ, maxR := p.Projector.Extents()

	for b := 0; b < p.Jobs.NumJobs(); b++ {
		jobIdx := p.Jobs.JobIdx[b]
		transNum := p.Jobs.JobNum[b]
		rotOff := p.Jobs.RotIdx[jobIdx] * 9

		tx := make([]float64, transNum)
		ty := make([]float64, transNum)
		tz := make([]float64, transNum)
		for i := 0; i < transNum; i++ {
			it := p.Jobs.TransIdx[jobIdx+i]
			tx[i] = p.TransX[it]
			ty[i] = p.TransY[it]
			if p.Data3D {
				tz[i] = p.TransZ[it]
			}
		}
		sx := buildSincosAxis(tx, imgX)
		sy := buildSincosAxis(ty, imgY)
		var sz sincosTable
		if p.Data3D {
			sz = buildSincosAxis(tz, imgZ)
		}

		sum := make([]float64, transNum)
		refReal := make([]float64, imgX)
		refImag := make([]float64, imgX)
		sigReal := make([]float64, imgX)
		sigImag := make([]float64, imgX)

		forEachFineRow(imgX, imgY, imgZ, maxR, p.Data3D, func(y, z, xstart, xend int) {
			pixelBase := rowPixelBase(y, z, imgX, imgY, imgZ, p.Data3D)

			for x := xstart; x < xend; x++ {
				rr, ri := projectAt(p.Projector, p.Data3D, p.Ref3D, x, y, z, p.Eulers, rotOff)
				halfCorr := sqrtHalf(p.Corr[pixelBase+x])
				refReal[x] = rr * halfCorr
				refImag[x] = ri * halfCorr
				sigReal[x] = p.ImgReal[pixelBase+x] * halfCorr
				sigImag[x] = p.ImgImag[pixelBase+x] * halfCorr
			}

			for i := 0; i < transNum; i++ {
				s := 0.0
				for x := xstart; x < xend; x++ {
					var ss, cc float64
					if p.Data3D {
						ss, cc = shift3D(sx, sy, sz, i, x, y, z)
					} else {
						ss, cc = shift2D(sx, sy, i, x, y)
					}
					shReal, shImag := applyShift(ss, cc, sigReal[x], sigImag[x])
					dr := refReal[x] - shReal
					di := refImag[x] - shImag
					s += dr*dr + di*di
				}
				sum[i] += s
			}
		})

		for i := 0; i < transNum; i++ {
			out[jobIdx+i] += sum[i] + sumInit
		}
	}
}

// CCFine mirrors Diff2Fine's row-by-row, polar-skip iteration but
// accumulates the normalized cross-correlation's weight and norm terms,
// emitting -weight/sqrt(norm) per job translation. sumInit is accepted but
// never added, and expLocalSqrtXi2 is accepted but never read, matching the
// documented behavior of the CC fine path exactly (see the open questions
// in the design notes).
func CCFine(p FineParams, sumInit, expLocalSqrtXi2 float64, out []float64) {
	imgX, imgY, imgZ, maxR := p.Projector.Extents()
	_ = sumInit
	_ = expLocalSqrtXi2

	for b := 0; b < p.Jobs.NumJobs(); b++ {
		jobIdx := p.Jobs.JobIdx[b]
		transNum := p.Jobs.JobNum[b]
		rotOff := p.Jobs.RotIdx[jobIdx] * 9

		tx := make([]float64, transNum)
		ty := make([]float64, transNum)
		tz := make([]float64, transNum)
		for i := 0; i < transNum; i++ {
			it := p.Jobs.TransIdx[jobIdx+i]
			tx[i] = p.TransX[it]
			ty[i] = p.TransY[it]
			if p.Data3D {
				tz[i] = p.TransZ[it]
			}
		}
		sx := buildSincosAxis(tx, imgX)
		sy := buildSincosAxis(ty, imgY)
		var sz sincosTable
		if p.Data3D {
			sz = buildSincosAxis(tz, imgZ)
		}

		weight := make([]float64, transNum)
		norm := make([]float64, transNum)
		refReal := make([]float64, imgX)
		refImag := make([]float64, imgX)
		sigReal := make([]float64, imgX)
		sigImag := make([]float64, imgX)
		corrRow := make([]float64, imgX)

		forEachFineRow(imgX, imgY, imgZ, maxR, p.Data3D, func(y, z, xstart, xend int) {
			pixelBase := rowPixelBase(y, z, imgX, imgY, imgZ, p.Data3D)

			for x := xstart; x < xend; x++ {
				rr, ri := projectAt(p.Projector, p.Data3D, p.Ref3D, x, y, z, p.Eulers, rotOff)
				refReal[x] = rr
				refImag[x] = ri
				sigReal[x] = p.ImgReal[pixelBase+x]
				sigImag[x] = p.ImgImag[pixelBase+x]
				corrRow[x] = p.Corr[pixelBase+x]
			}

			for i := 0; i < transNum; i++ {
				w, n := 0.0, 0.0
				for x := xstart; x < xend; x++ {
					var ss, cc float64
					if p.Data3D {
						ss, cc = shift3D(sx, sy, sz, i, x, y, z)
					} else {
						ss, cc = shift2D(sx, sy, i, x, y)
					}
					shReal, shImag := applyShift(ss, cc, sigReal[x], sigImag[x])
					w += (refReal[x]*shReal + refImag[x]*shImag) * corrRow[x]
					n += (refReal[x]*refReal[x] + refImag[x]*refImag[x]) * corrRow[x]
				}
				weight[i] += w
				norm[i] += n
			}
		})

		for i := 0; i < transNum; i++ {
			out[jobIdx+i] += -weight[i] / sqrtStrict(norm[i])
		}
	}
}

// rowPixelBase returns the linear pixel index of x=0 for row (y,z) using
// the raw, unwrapped iy/iz the row was visited under, recovered from the
// signed y/z resolveAxis returned (a negative y/z means iy=y+imgY or
// iz=z+imgZ).
func rowPixelBase(y, z, imgX, imgY, imgZ int, data3D bool) int {
	iy := y
	if iy < 0 {
		iy += imgY
	}
	if !data3D {
		return iy * imgX
	}
	iz := z
	if iz < 0 {
		iz += imgZ
	}
	return iz*imgX*imgY + iy*imgX
}
