// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nanomath provides the descriptive statistics used across the
// tool: N50, Phred quality averaging, outlier thresholds, percentiles
// and Pearson correlation.
package nanomath

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// N50 returns the length threshold such that reads of that length or
// longer account for at least half of the total bases. It returns 0
// for an empty input.
func N50(lengths []int) int {
	if len(lengths) == 0 {
		return 0
	}
	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	var total int
	for _, l := range sorted {
		total += l
	}
	var csum int
	for _, l := range sorted {
		csum += l
		if 2*csum >= total {
			return l
		}
	}
	return sorted[len(sorted)-1]
}

// errProbs maps Phred scores to error probabilities.
var errProbs [128]float64

func init() {
	for i := range errProbs {
		errProbs[i] = math.Pow(10, -float64(i)/10)
	}
}

// AvgQual returns the mean basecall quality of a read given its raw
// Phred scores, averaging in error-probability space rather than over
// the scores themselves.
func AvgQual(phreds []int) float64 {
	if len(phreds) == 0 {
		return 0
	}
	var sum float64
	for _, q := range phreds {
		if q < 0 {
			q = 0
		} else if q >= len(errProbs) {
			q = len(errProbs) - 1
		}
		sum += errProbs[q]
	}
	return -10 * math.Log10(sum/float64(len(phreds)))
}

// AvgQualBytes is AvgQual for ASCII-offset quality strings as found in
// FASTQ records.
func AvgQualBytes(qual []byte, offset int) float64 {
	if len(qual) == 0 {
		return 0
	}
	var sum float64
	for _, q := range qual {
		p := int(q) - offset
		if p < 0 {
			p = 0
		} else if p >= len(errProbs) {
			p = len(errProbs) - 1
		}
		sum += errProbs[p]
	}
	return -10 * math.Log10(sum/float64(len(qual)))
}

// OutlierThreshold returns the cutoff above which a length is
// considered an extreme outlier: the 75th percentile plus three
// standard deviations.
func OutlierThreshold(xs []float64) float64 {
	return Percentile(xs, 75) + 3*stat.StdDev(xs, nil)
}

// Percentile returns the p'th percentile of xs (p in [0,100]) using
// linear interpolation between closest ranks. The interpolation rule
// matches the one used when the statistics cutoffs were chosen, which
// none of the stat.Quantile cumulant kinds reproduce.
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	f := p / 100 * float64(len(sorted)-1)
	i := int(f)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (f-float64(i))*(sorted[i+1]-sorted[i])
}

// Pearson returns the Pearson correlation coefficient of x and y.
func Pearson(x, y []float64) float64 {
	return stat.Correlation(x, y, nil)
}

// Mean returns the arithmetic mean of xs, or 0 for an empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// Median returns the median of xs, or 0 for an empty input.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return Percentile(xs, 50)
}
