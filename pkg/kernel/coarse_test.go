package kernel

import "testing"

func zeros(n int) []float64 { return make([]float64, n) }

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

// S1: zero translations, zero signal, constant reference (1,0).
func TestDiff2Coarse_S1_ZeroSignalConstantReference(t *testing.T) {
	imgX, imgY, maxR := 4, 4, 1
	imageSize := imgX * imgY

	proj := constProjector{imgX: imgX, imgY: imgY, imgZ: 1, maxR: maxR, real: 1, imag: 0}
	out := zeros(1 * 1 * 1)

	Diff2Coarse(CoarseParams{
		GridSize:       1,
		Eulers:         identityEulers(1),
		TransX:         []float64{0},
		TransY:         []float64{0},
		TransZ:         []float64{0},
		ImgReal:        zeros(imageSize),
		ImgImag:        zeros(imageSize),
		Corr:           ones(imageSize),
		Projector:      proj,
		TranslationNum: 1,
		ImageSize:      imageSize,
		EulersPerBlock: 1,
	}, out)

	want := 0.5 * float64(imageSize)
	if got := out[0]; got != want {
		t.Fatalf("out[0] = %v, want %v", got, want)
	}
}

// S2: same geometry, projector matches the (zero) signal exactly.
func TestDiff2Coarse_S2_MatchingReferenceIsZero(t *testing.T) {
	imgX, imgY, maxR := 4, 4, 1
	imageSize := imgX * imgY

	proj := constProjector{imgX: imgX, imgY: imgY, imgZ: 1, maxR: maxR, real: 0, imag: 0}
	out := zeros(1)

	Diff2Coarse(CoarseParams{
		GridSize:       1,
		Eulers:         identityEulers(1),
		TransX:         []float64{0},
		TransY:         []float64{0},
		TransZ:         []float64{0},
		ImgReal:        zeros(imageSize),
		ImgImag:        zeros(imageSize),
		Corr:           ones(imageSize),
		Projector:      proj,
		TranslationNum: 1,
		ImageSize:      imageSize,
		EulersPerBlock: 1,
	}, out)

	if out[0] != 0 {
		t.Fatalf("out[0] = %v, want 0", out[0])
	}
}

// Invariant 1: accumulator semantics. Calling a kernel twice into the same
// buffer doubles its delta over the starting value.
func TestDiff2Coarse_AccumulatorSemantics(t *testing.T) {
	imgX, imgY, maxR := 4, 4, 1
	imageSize := imgX * imgY
	proj := constProjector{imgX: imgX, imgY: imgY, imgZ: 1, maxR: maxR, real: 1, imag: 0.5}

	params := CoarseParams{
		GridSize:       1,
		Eulers:         identityEulers(1),
		TransX:         []float64{0},
		TransY:         []float64{0},
		TransZ:         []float64{0},
		ImgReal:        ones(imageSize),
		ImgImag:        zeros(imageSize),
		Corr:           ones(imageSize),
		Projector:      proj,
		TranslationNum: 1,
		ImageSize:      imageSize,
		EulersPerBlock: 1,
	}

	zero := zeros(1)
	Diff2Coarse(params, zero)
	delta := zero[0]

	start := []float64{10}
	Diff2Coarse(params, start)
	Diff2Coarse(params, start)

	want := 10 + 2*delta
	if start[0] != want {
		t.Fatalf("out = %v, want %v", start[0], want)
	}
}

// Invariant 2: translation identity. With zero translations, diff2 coarse
// equals 0.5 * sum_p corr[p] * |ref_p - sig_p|^2 directly.
func TestDiff2Coarse_TranslationIdentity(t *testing.T) {
	imgX, imgY, maxR := 4, 4, 1
	imageSize := imgX * imgY

	sig := []float64{1, -2, 0.5, 3, 0, 1, 2, -1, 0.25, 0.75, -3, 1, 0, 0, 1, -1}
	sigImag := zeros(imageSize)
	corr := ones(imageSize)

	proj := constProjector{imgX: imgX, imgY: imgY, imgZ: 1, maxR: maxR, real: 2, imag: -1}
	out := zeros(1)

	Diff2Coarse(CoarseParams{
		GridSize:       1,
		Eulers:         identityEulers(1),
		TransX:         []float64{0},
		TransY:         []float64{0},
		TransZ:         []float64{0},
		ImgReal:        sig,
		ImgImag:        sigImag,
		Corr:           corr,
		Projector:      proj,
		TranslationNum: 1,
		ImageSize:      imageSize,
		EulersPerBlock: 1,
	}, out)

	want := 0.0
	for p := 0; p < imageSize; p++ {
		dr := 2 - sig[p]
		di := -1 - sigImag[p]
		want += 0.5 * corr[p] * (dr*dr + di*di)
	}

	const eps = 1e-9
	if diff := out[0] - want; diff > eps || diff < -eps {
		t.Fatalf("out = %v, want %v", out[0], want)
	}
}

// Invariant 3: reference-signal identity. When the projector echoes the
// signal exactly and translations are zero, diff2 must be zero.
func TestDiff2Coarse_ReferenceSignalIdentity(t *testing.T) {
	imgX, imgY, maxR := 4, 4, 1
	imageSize := imgX * imgY

	real := []float64{1, -2, 0.5, 3, 0, 1, 2, -1, 0.25, 0.75, -3, 1, 0, 0, 1, -1}
	imag := zeros(imageSize)

	proj := signalProjector{imgX: imgX, imgY: imgY, imgZ: 1, maxR: maxR, real: real, imag: imag}
	out := zeros(1)

	Diff2Coarse(CoarseParams{
		GridSize:       1,
		Eulers:         identityEulers(1),
		TransX:         []float64{0},
		TransY:         []float64{0},
		TransZ:         []float64{0},
		ImgReal:        real,
		ImgImag:        imag,
		Corr:           ones(imageSize),
		Projector:      proj,
		TranslationNum: 1,
		ImageSize:      imageSize,
		EulersPerBlock: 1,
	}, out)

	if out[0] != 0 {
		t.Fatalf("out[0] = %v, want 0", out[0])
	}
}

// S6: shifting every translation by a full extent leaves diff2 unchanged,
// since the sincos tables are 2*pi-periodic in the shifted coordinate.
func TestDiff2Coarse_S6_TranslationPeriodicity(t *testing.T) {
	imgX, imgY, maxR := 4, 4, 1
	imageSize := imgX * imgY

	sig := []float64{1, -2, 0.5, 3, 0, 1, 2, -1, 0.25, 0.75, -3, 1, 0, 0, 1, -1}
	proj := constProjector{imgX: imgX, imgY: imgY, imgZ: 1, maxR: maxR, real: 1, imag: -0.5}

	base := CoarseParams{
		GridSize:       1,
		Eulers:         identityEulers(1),
		ImgReal:        sig,
		ImgImag:        zeros(imageSize),
		Corr:           ones(imageSize),
		Projector:      proj,
		TranslationNum: 1,
		ImageSize:      imageSize,
		EulersPerBlock: 1,
	}

	baseline := zeros(1)
	base.TransX, base.TransY, base.TransZ = []float64{1}, []float64{2}, []float64{0}
	Diff2Coarse(base, baseline)

	shifted := zeros(1)
	base.TransX, base.TransY, base.TransZ = []float64{1 + float64(imgX)}, []float64{2 + float64(imgY)}, []float64{0}
	Diff2Coarse(base, shifted)

	const eps = 1e-9
	if diff := baseline[0] - shifted[0]; diff > eps || diff < -eps {
		t.Fatalf("baseline=%v shifted=%v, expected within %v", baseline[0], shifted[0], eps)
	}
}
