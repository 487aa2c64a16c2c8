package common

import "github.com/jakecoffman/cp"

// PixelsPerUnit converts world units to screen pixels.
const PixelsPerUnit = 32.0

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpVector interpolates componentwise without clamping t.
func LerpVector(a, b cp.Vector, t float64) cp.Vector {
	return cp.Vector{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
