// Package kernel implements the diff2 and CC scoring kernels: the innermost
// loop of the alignment search that scores how well a rotated, translated
// reference matches an observed Fourier-domain image or volume.
//
// Every exported kernel here is a pure accumulator: it never zeroes its
// output buffer, allocates only call-local scratch, and touches no state
// beyond its arguments. Preconditions (non-nil buffers, non-zero extents,
// translation counts within capacity) are the caller's responsibility;
// kernels do not validate them.
package kernel

// pixelXYZ resolves a linear pixel index into signed Fourier coordinates,
// wrapping components above maxR into their negative-frequency equivalents.
func pixelXYZ(p, imgX, imgY, imgZ, maxR int) (x, y, z int) {
	if imgZ > 1 {
		z = p / (imgX * imgY)
		r := p % (imgX * imgY)
		x = r % imgX
		y = r / imgX
		if z > maxR {
			z -= imgZ
		}
	} else {
		x = p % imgX
		y = p / imgX
		z = 0
	}
	if y > maxR {
		y -= imgY
	}
	return x, y, z
}

// resolveAxis computes the signed Fourier coordinate and the [start,end) x
// range for one row/plane index i along an extent of size, narrowing an
// inherited default range. Indices within maxR of either edge of the extent
// pass the inherited range through unchanged; indices strictly in between
// are outside the sampled disk except for a single pixel at x=maxR (the
// "polar skip" band).
//
// For a 2D sweep call this once per row with (0,imgX) as the default. For a
// 3D sweep, call it once per plane (iz) with (0,imgX) as the default, then
// once per row (iy) within that plane using the plane's own result as the
// default: a skip band at either level narrows the range to the single
// pixel at x=maxR.
func resolveAxis(i, size, maxR, defaultStart, defaultEnd int) (coord, start, end int) {
	switch {
	case i <= maxR:
		return i, defaultStart, defaultEnd
	case i >= size-maxR:
		return i - size, defaultStart, defaultEnd
	default:
		return i, maxR, maxR + 1
	}
}
