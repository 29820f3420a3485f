package kernel

import "math"

// sincosTable holds per-translation, per-axis sin/cos lookups flattened as
// translationNum*extent contiguous buffers, indexed [i*extent+k]. Negative
// coordinates are never stored; callers fold the sign at lookup time via
// lookup.
type sincosTable struct {
	extent int
	sin    []float64
	cos    []float64
}

// buildSincosAxis fills sin(2*pi*t[i]*k/extent) and cos(...) for every
// translation i and every k in [0,extent).
func buildSincosAxis(t []float64, extent int) sincosTable {
	tbl := sincosTable{
		extent: extent,
		sin:    make([]float64, len(t)*extent),
		cos:    make([]float64, len(t)*extent),
	}
	for i, ti := range t {
		base := i * extent
		w := 2 * math.Pi * ti / float64(extent)
		for k := 0; k < extent; k++ {
			s, c := math.Sincos(w * float64(k))
			tbl.sin[base+k] = s
			tbl.cos[base+k] = c
		}
	}
	return tbl
}

// lookup returns (sin,cos) for translation i at signed coordinate k, folding
// the sign of a negative k via sin(-k)=-sin(k), cos(-k)=cos(k).
func (t sincosTable) lookup(i, k int) (sin, cos float64) {
	base := i * t.extent
	if k < 0 {
		k = -k
		return -t.sin[base+k], t.cos[base+k]
	}
	return t.sin[base+k], t.cos[base+k]
}

// shift2D composes the x/y sincos contributions for translation i at
// coordinate (x,y) into a single (ss,cc) pair via the angle-addition
// identity.
func shift2D(sx, sy sincosTable, i, x, y int) (ss, cc float64) {
	sinX, cosX := sx.lookup(i, x)
	sinY, cosY := sy.lookup(i, y)
	ss = sinX*cosY + cosX*sinY
	cc = cosX*cosY - sinX*sinY
	return ss, cc
}

// shift3D extends shift2D with the z axis contribution.
func shift3D(sx, sy, sz sincosTable, i, x, y, z int) (ss, cc float64) {
	ss, cc = shift2D(sx, sy, i, x, y)
	sinZ, cosZ := sz.lookup(i, z)
	ssP := ss*cosZ + cc*sinZ
	ccP := cc*cosZ - ss*sinZ
	return ssP, ccP
}

// applyShift rotates the complex sample (a+bi) by the phase whose sin/cos
// components are (ss,cc), returning the shifted (real,imag) pair.
func applyShift(ss, cc, a, b float64) (real, imag float64) {
	return cc*a - ss*b, cc*b + ss*a
}
