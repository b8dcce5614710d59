package implicit

import "math"

const (
	// BisectTolerance is the bracket width at which bisection stops
	BisectTolerance = 1e-9
	// MaxBisectIterations bounds bisection when the tolerance cannot be reached
	MaxBisectIterations = 100
	// GradientEpsilon is the central-difference step for fields without an analytic gradient
	GradientEpsilon = 1e-6
	// MaxMarchSteps caps the number of samples per ray; the step grows to honor it
	MaxMarchSteps = 1 << 20
)

// FindRoot marches f from t0 to t1 in increments of step and refines the first sign
// change it finds. The last sample is always taken exactly at t1, so a root between the
// final full step and t1 is not skipped. Returns false if f never changes sign.
// Features thinner than step can be missed.
func FindRoot(f func(t float64) float64, t0, t1, step float64) (float64, bool) {
	if step <= 0 || t1 < t0 || math.IsNaN(t0) || math.IsInf(t0, 0) || math.IsInf(t1, 0) {
		return 0, false
	}
	step = math.Max(step, (t1-t0)/MaxMarchSteps)

	prevT := t0
	prev := f(prevT)
	if prev == 0 {
		return prevT, true
	}

	for i := 1; ; i++ {
		t := math.Min(t0+float64(i)*step, t1)

		value := f(t)
		if value == 0 {
			return t, true
		}
		if signChange(prev, value) {
			return Bisect(f, prevT, t), true
		}

		if t >= t1 {
			return 0, false
		}
		prevT, prev = t, value
	}
}

func signChange(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return math.Signbit(a) != math.Signbit(b)
}

// Bisect narrows a bracket [lo, hi] with f(lo) and f(hi) of opposite sign down to
// BisectTolerance and returns its midpoint
func Bisect(f func(t float64) float64, lo, hi float64) float64 {
	fLo := f(lo)
	for i := 0; i < MaxBisectIterations && hi-lo > BisectTolerance; i++ {
		mid := 0.5 * (lo + hi)
		fMid := f(mid)
		if fMid == 0 {
			return mid
		}
		if math.Signbit(fMid) == math.Signbit(fLo) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}
