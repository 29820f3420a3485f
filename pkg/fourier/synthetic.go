// Package fourier builds a Fourier-domain reference (2D image or 3D
// volume) from a real-space density, and provides synthetic density
// generators so the kernels and CLI can run end to end without any
// particle-stack reader.
package fourier

import "math"

// blob is a single isotropic Gaussian used by SyntheticDensity.
type blob struct {
	cx, cy, cz float64
	sigma      float64
	amplitude  float64
}

// SyntheticDensity generates a deterministic real-space density as a sum of
// Gaussian blobs scattered through the given extents. imgZ=1 produces a
// flat 2D density. The same seed always produces the same density, so
// tests and demos never depend on a real particle stack.
func SyntheticDensity(imgX, imgY, imgZ, numBlobs int, seed int64) []float64 {
	rng := newLCG(seed)
	blobs := make([]blob, numBlobs)
	for i := range blobs {
		blobs[i] = blob{
			cx:        rng.float64() * float64(imgX),
			cy:        rng.float64() * float64(imgY),
			cz:        rng.float64() * float64(imgZ),
			sigma:     1 + rng.float64()*float64(min3(imgX, imgY, imgZ))/6,
			amplitude: 0.5 + rng.float64(),
		}
	}

	density := make([]float64, imgX*imgY*imgZ)
	for z := 0; z < imgZ; z++ {
		for y := 0; y < imgY; y++ {
			for x := 0; x < imgX; x++ {
				idx := z*imgX*imgY + y*imgX + x
				var v float64
				for _, b := range blobs {
					dx := float64(x) - b.cx
					dy := float64(y) - b.cy
					dz := float64(z) - b.cz
					r2 := dx*dx + dy*dy + dz*dz
					v += b.amplitude * math.Exp(-r2/(2*b.sigma*b.sigma))
				}
				density[idx] = v
			}
		}
	}
	return density
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// lcg is a minimal linear congruential generator used in place of
// math/rand so density generation never depends on process-global random
// state, keeping SyntheticDensity a pure function of its seed.
type lcg struct{ state uint64 }

func newLCG(seed int64) *lcg {
	return &lcg{state: uint64(seed) ^ 0x9E3779B97F4A7C15}
}

func (g *lcg) next() uint64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	return g.state
}

func (g *lcg) float64() float64 {
	return float64(g.next()>>11) / float64(1<<53)
}
