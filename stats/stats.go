// Package stats summarizes samples of match outcomes.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Summary describes a sample of values.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes a Summary. The standard deviation is the unbiased
// sample estimate and is zero for fewer than two values.
func Summarize(xs []float64) Summary {
	s := Summary{N: len(xs)}
	if len(xs) == 0 {
		return s
	}
	if len(xs) == 1 {
		s.Mean, s.Min, s.Max = xs[0], xs[0], xs[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
	s.Min = floats.Min(xs)
	s.Max = floats.Max(xs)
	return s
}

// StandardError of the mean.
func (s Summary) StandardError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev / math.Sqrt(float64(s.N))
}

// ConfidenceInterval returns the bounds of the two-tailed interval around
// the mean, for a confidence given in percent.
func (s Summary) ConfidenceInterval(confidence float64) (float64, float64) {
	margin := ZVal(confidence) * s.StandardError()
	return s.Mean - margin, s.Mean + margin
}

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidence float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	return dist.Quantile((1 + confidence/100) / 2)
}

// WinRate counts draws as half a win.
func WinRate(wins, draws, games int) float64 {
	if games == 0 {
		return 0
	}
	return (float64(wins) + float64(draws)/2) / float64(games)
}
