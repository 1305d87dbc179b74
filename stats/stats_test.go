package stats

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []float64
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]float64{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]float64{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]float64{1}, 1, 0},
		{[]float64{}, 0, 0},
		{[]float64{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := Summarize(c.scores)
		is.Equal(s.N, len(c.scores))
		is.True(FuzzyEqual(s.Mean, c.mean))
		is.True(FuzzyEqual(s.StdDev, c.stdev))
	}
	s := Summarize([]float64{-3, 8, 1})
	is.Equal(s.Min, -3.0)
	is.Equal(s.Max, 8.0)
}

func TestConfidenceInterval(t *testing.T) {
	assert.InDelta(t, 1.959964, ZVal(95), 1e-5)
	assert.InDelta(t, 2.575829, ZVal(99), 1e-5)

	s := Summary{N: 100, Mean: 4, StdDev: 10}
	lo, hi := s.ConfidenceInterval(95)
	assert.InDelta(t, 4-1.959964, lo, 1e-5)
	assert.InDelta(t, 4+1.959964, hi, 1e-5)
}

func TestWinRate(t *testing.T) {
	is := is.New(t)
	is.Equal(WinRate(3, 2, 10), 0.4)
	is.Equal(WinRate(0, 0, 0), 0.0)
}
