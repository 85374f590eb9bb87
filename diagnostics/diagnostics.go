// Package diagnostics generalizes the marginal-comparison error functions
// used to judge how far a sampler's estimate has moved between checkpoints
// from operating on a model's per-Variable marginals to operating on any
// pair of same-length, non-negative weight vectors. The NRPT convergence
// predicates and the end-of-run report both reduce to "compare two
// distributions", which is all these functions assume.
package diagnostics

import (
	"math"

	"github.com/pkg/errors"
)

const normEps = 1e-12

func normalize(v []float64) []float64 {
	total := 0.0
	for _, x := range v {
		total += x
	}
	if total < normEps {
		total = normEps
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / total
	}
	return out
}

// MaxAbsDiff returns the largest absolute difference between the two
// distributions after independently normalizing each to sum to one.
func MaxAbsDiff(p, q []float64) (float64, error) {
	if len(p) != len(q) {
		return 0, errors.Errorf("length mismatch %d != %d", len(p), len(q))
	}
	if len(p) == 0 {
		return 0, nil
	}
	np, nq := normalize(p), normalize(q)
	maxErr := 0.0
	for i := range np {
		if d := math.Abs(np[i] - nq[i]); i == 0 || d > maxErr {
			maxErr = d
		}
	}
	return maxErr, nil
}

// MeanAbsDiff returns the mean absolute difference between the two
// distributions after independently normalizing each to sum to one.
func MeanAbsDiff(p, q []float64) (float64, error) {
	if len(p) != len(q) {
		return 0, errors.Errorf("length mismatch %d != %d", len(p), len(q))
	}
	if len(p) == 0 {
		return 0, nil
	}
	np, nq := normalize(p), normalize(q)
	sum := 0.0
	for i := range np {
		sum += math.Abs(np[i] - nq[i])
	}
	return sum / float64(len(np)), nil
}

// HellingerDiff returns the Hellinger distance between the two
// distributions: sqrt(sum((sqrt(p)-sqrt(q))^2)) / sqrt(2), each normalized
// first, so it lies in [0,1].
func HellingerDiff(p, q []float64) (float64, error) {
	if len(p) != len(q) {
		return 0, errors.Errorf("length mismatch %d != %d", len(p), len(q))
	}
	if len(p) == 0 {
		return 0, nil
	}
	np, nq := normalize(p), normalize(q)
	sum := 0.0
	for i := range np {
		d := math.Sqrt(np[i]) - math.Sqrt(nq[i])
		sum += d * d
	}
	return math.Sqrt(sum) / math.Sqrt2, nil
}

// klDivergence is the non-symmetric Kullback-Leibler divergence; a
// subroutine of JSDivergence only, so it trusts its inputs to already be
// normalized and equal length.
func klDivergence(p, q []float64) float64 {
	diverge := 0.0
	for i, pi := range p {
		if pi == 0 {
			continue
		}
		diverge += pi * math.Log2(pi/q[i])
	}
	return diverge
}

// JSDivergence returns the Jensen-Shannon divergence between the two
// distributions, a symmetric generalization of the KL divergence bounded
// in [0,1] (using log2).
func JSDivergence(p, q []float64) (float64, error) {
	if len(p) != len(q) {
		return 0, errors.Errorf("length mismatch %d != %d", len(p), len(q))
	}
	if len(p) == 0 {
		return 0, nil
	}
	np, nq := normalize(p), normalize(q)
	mid := make([]float64, len(np))
	for i := range np {
		mid[i] = (np[i] + nq[i]) * 0.5
	}
	return 0.5 * (klDivergence(np, mid) + klDivergence(nq, mid)), nil
}

// Suite bundles the mean- and max-reductions of the four error functions
// above across a set of paired sample vectors - e.g. one pair per replica,
// or one pair per scalar coordinate of a vector-valued state.
type Suite struct {
	MeanMeanAbsError float64
	MeanMaxAbsError  float64
	MeanHellinger    float64
	MeanJSDiverge    float64

	MaxMeanAbsError float64
	MaxMaxAbsError  float64
	MaxHellinger    float64
	MaxJSDiverge    float64
}

// NewSuite computes Suite across parallel slices of distributions: ps[i]
// is compared against qs[i] for every i.
func NewSuite(ps, qs [][]float64) (*Suite, error) {
	if len(ps) != len(qs) {
		return nil, errors.Errorf("pair count mismatch %d != %d", len(ps), len(qs))
	}
	if len(ps) == 0 {
		return nil, errors.Errorf("no distribution pairs to score")
	}

	s := &Suite{}
	for i, p := range ps {
		q := qs[i]

		d, err := MeanAbsDiff(p, q)
		if err != nil {
			return nil, errors.Wrapf(err, "pair %d", i)
		}
		s.MeanMeanAbsError += d
		s.MaxMeanAbsError = math.Max(d, s.MaxMeanAbsError)

		d, err = MaxAbsDiff(p, q)
		if err != nil {
			return nil, errors.Wrapf(err, "pair %d", i)
		}
		s.MeanMaxAbsError += d
		s.MaxMaxAbsError = math.Max(d, s.MaxMaxAbsError)

		d, err = HellingerDiff(p, q)
		if err != nil {
			return nil, errors.Wrapf(err, "pair %d", i)
		}
		s.MeanHellinger += d
		s.MaxHellinger = math.Max(d, s.MaxHellinger)

		d, err = JSDivergence(p, q)
		if err != nil {
			return nil, errors.Wrapf(err, "pair %d", i)
		}
		s.MeanJSDiverge += d
		s.MaxJSDiverge = math.Max(d, s.MaxJSDiverge)
	}

	n := float64(len(ps))
	s.MeanMeanAbsError /= n
	s.MeanMaxAbsError /= n
	s.MeanHellinger /= n
	s.MeanJSDiverge /= n

	return s, nil
}
