package tempering

import (
	"math"

	"github.com/samplekit/nrpt/nrpterr"
)

// Spline is a monotone cubic Hermite interpolant, built fresh every tune
// round from the current ladder and rejection vector. Tangents follow the
// Fritsch-Carlson rule, which is exactly what preserves monotonicity of
// data that is itself monotone - guaranteed here since every rejection
// entry is non-negative.
type Spline struct {
	x, y, m []float64
}

// NewMonotoneSpline builds a Spline through the points (x[i], y[i]). x
// must be strictly increasing and at least two points long.
func NewMonotoneSpline(x, y []float64) (*Spline, error) {
	n := len(x)
	if n != len(y) {
		return nil, nrpterr.InvalidArgument("x/y length mismatch %d != %d", n, len(y))
	}
	if n < 2 {
		return nil, nrpterr.InvalidArgument("spline needs at least 2 points, got %d", n)
	}
	for i := 1; i < n; i++ {
		if x[i] <= x[i-1] {
			return nil, nrpterr.NumericFailure("spline x values must be strictly increasing at index %d", i)
		}
	}

	delta := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		delta[i] = (y[i+1] - y[i]) / (x[i+1] - x[i])
	}

	m := make([]float64, n)
	m[0] = delta[0]
	m[n-1] = delta[n-2]
	for i := 1; i < n-1; i++ {
		if delta[i-1]*delta[i] <= 0 {
			m[i] = 0
		} else {
			m[i] = (delta[i-1] + delta[i]) / 2
		}
	}

	// Clamp tangents so no cubic segment overshoots its endpoints.
	for i := 0; i < n-1; i++ {
		if delta[i] == 0 {
			m[i], m[i+1] = 0, 0
			continue
		}
		a := m[i] / delta[i]
		b := m[i+1] / delta[i]
		s := a*a + b*b
		if s > 9 {
			tau := 3 / math.Sqrt(s)
			m[i] = tau * a * delta[i]
			m[i+1] = tau * b * delta[i]
		}
	}

	return &Spline{x: x, y: y, m: m}, nil
}

// Eval evaluates the spline at t, clamping to the endpoint value outside
// [x[0], x[n-1]].
func (s *Spline) Eval(t float64) float64 {
	n := len(s.x)
	if t <= s.x[0] {
		return s.y[0]
	}
	if t >= s.x[n-1] {
		return s.y[n-1]
	}

	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if s.x[mid] <= t {
			lo = mid
		} else {
			hi = mid
		}
	}

	h := s.x[hi] - s.x[lo]
	u := (t - s.x[lo]) / h
	h00 := (1 + 2*u) * (1 - u) * (1 - u)
	h10 := u * (1 - u) * (1 - u)
	h01 := u * u * (3 - 2*u)
	h11 := u * u * (u - 1)
	return h00*s.y[lo] + h10*h*s.m[lo] + h01*s.y[hi] + h11*h*s.m[hi]
}

const bisectTol = 1e-8

func bisect(spline *Spline, target, lower, upper float64) (float64, error) {
	flow := spline.Eval(lower) - target
	fhigh := spline.Eval(upper) - target

	if flow == 0 {
		return lower, nil
	}
	if fhigh == 0 {
		return upper, nil
	}
	if (flow > 0) == (fhigh > 0) {
		return 0, nrpterr.NumericFailure("bisection failed to bracket target %v in [%v,%v]", target, lower, upper)
	}

	for i := 0; i < 200; i++ {
		mid := (lower + upper) / 2
		fmid := spline.Eval(mid) - target
		if math.Abs(fmid) <= bisectTol || (upper-lower) < bisectTol {
			return mid, nil
		}
		if (fmid > 0) == (flow > 0) {
			lower, flow = mid, fmid
		} else {
			upper = mid
		}
	}

	return (lower + upper) / 2, nil
}

// Lambda wraps a built communication-barrier spline together with its
// total Λ(1), the diagnostic the SAMPLE transition reports.
type Lambda struct {
	spline *Spline
	Total  float64
}

// BuildLambda constructs Λ from a strictly decreasing β-ladder and its
// matching rejection vector, per section 4.F steps 1-3: x is the ladder
// reversed to increase from 0 to 1, y is the cumulative rejection prefix.
func BuildLambda(ladder, rej []float64) (*Lambda, error) {
	n := len(ladder)
	if n < 2 {
		return nil, nrpterr.InvalidArgument("ladder needs at least 2 entries, got %d", n)
	}
	if len(rej) != n-1 {
		return nil, nrpterr.InvalidArgument("rejection vector length %d != %d", len(rej), n-1)
	}
	for i := 1; i < n; i++ {
		if ladder[i] >= ladder[i-1] {
			return nil, nrpterr.InvalidArgument("ladder must be strictly decreasing at index %d", i)
		}
	}

	x := make([]float64, n)
	for i, b := range ladder {
		x[n-1-i] = b
	}

	y := make([]float64, n)
	cum := 0.0
	for i := 0; i < n-1; i++ {
		cum += rej[i]
		y[i+1] = cum
	}
	total := y[n-1]
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, nrpterr.NumericFailure("Lambda total is not finite: %v", total)
	}

	l := &Lambda{Total: total}
	if total <= 0 {
		return l, nil
	}

	spline, err := NewMonotoneSpline(x, y)
	if err != nil {
		return nil, nrpterr.Wrap(err, "building communication barrier spline")
	}
	l.spline = spline
	return l, nil
}

// Eval returns Λ(beta). A degenerate (all-zero-rejection) Λ is identically
// zero everywhere, matching BuildLambda's early return.
func (l *Lambda) Eval(beta float64) float64 {
	if l.spline == nil {
		return 0
	}
	return l.spline.Eval(beta)
}

// UpdateLadder re-equidistributes the communication barrier across the
// ladder, per section 4.F's bisection procedure. On degenerate input where
// Λ_total=0 it returns the input ladder unchanged.
func UpdateLadder(ladder, rej []float64) ([]float64, error) {
	lambda, err := BuildLambda(ladder, rej)
	if err != nil {
		return nil, err
	}

	n := len(ladder)
	out := make([]float64, n)
	out[0] = 1.0
	out[n-1] = 0.0

	if lambda.Total <= 0 {
		copy(out, ladder)
		return out, nil
	}

	// Solve bottom-up: out[n-1]=0.0 is already fixed, and each target
	// shrinks toward it as i grows, so anchoring the bracket's lower
	// bound on the neighbor just below (already solved) always brackets
	// the root. Solving top-down instead - anchoring on the larger,
	// already-solved neighbor above - does not: that neighbor's Λ value
	// already exceeds the next target, so the bracket can miss low.
	for i := n - 2; i >= 1; i-- {
		target := lambda.Total * float64(n-1-i) / float64(n-1)
		lower := math.Max(0, out[i+1]-0.1)
		b, err := bisect(lambda.spline, target, lower, 1.0)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}

	return out, nil
}
