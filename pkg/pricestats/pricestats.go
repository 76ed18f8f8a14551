// Package pricestats computes robust aggregates over the raw, per-source
// price observations of one price check. Quotes come from external
// scrapers and are noisy; the trimmed mean and quartiles exist to keep a
// handful of troll listings from skewing the headline number.
package pricestats

import (
	"math"
	"sort"
)

// Stats holds the aggregates over one set of observed prices. A Stats value
// is only meaningful together with the ok result of Compute: an empty
// observation set has no statistics at all, which is different from
// statistics whose value happens to be zero.
type Stats struct {
	Count       int
	Min         float64
	Max         float64
	Mean        float64
	Median      float64
	P25         float64
	P75         float64
	TrimmedMean float64
	StdDev      float64
}

// Compute returns the aggregates over prices. It reports ok=false for an
// empty input, in which case the returned Stats is the zero value and must
// not be used. The input slice is not modified.
func Compute(prices []float64) (Stats, bool) {
	n := len(prices)
	if n == 0 {
		return Stats{}, false
	}

	sorted := make([]float64, n)
	copy(sorted, prices)
	sort.Float64s(sorted)

	s := Stats{
		Count:       n,
		Min:         sorted[0],
		Max:         sorted[n-1],
		Mean:        mean(sorted),
		Median:      percentile(sorted, 0.5),
		P25:         percentile(sorted, 0.25),
		P75:         percentile(sorted, 0.75),
		TrimmedMean: trimmedMean(sorted),
		StdDev:      stdDev(sorted),
	}
	return s, true
}

func mean(sorted []float64) float64 {
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return sum / float64(len(sorted))
}

// percentile interpolates linearly between the two sorted samples
// bracketing the fractional rank n*q - 0.5 (Hazen definition), clamped to
// the sample range. For [1,2,3,4,10] this puts p25 at 1.75 and the median
// at 3.
func percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	idx := float64(n)*q - 0.5
	if idx <= 0 {
		return sorted[0]
	}
	if idx >= float64(n-1) {
		return sorted[n-1]
	}
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// trimmedMean averages the middle half of the sorted samples, dropping the
// lowest and highest quartile by position. Below four samples the trimmed
// window would be empty, so it degrades to the full mean.
func trimmedMean(sorted []float64) float64 {
	n := len(sorted)
	if n < 4 {
		return mean(sorted)
	}
	return mean(sorted[n/4 : 3*n/4])
}

// stdDev is the population standard deviation; 0 for fewer than two
// samples.
func stdDev(sorted []float64) float64 {
	n := len(sorted)
	if n < 2 {
		return 0
	}
	m := mean(sorted)
	var sq float64
	for _, v := range sorted {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(n))
}
