// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nanoplotter

import "math"

// denseGrid is a row-major value grid over a rectangular data domain,
// satisfying plotter.GridXYZ for heatmap rendering.
type denseGrid struct {
	z          []float64
	cols, rows int
	x0, dx     float64
	y0, dy     float64
}

func (g denseGrid) Dims() (c, r int)   { return g.cols, g.rows }
func (g denseGrid) Z(c, r int) float64 { return g.z[r*g.cols+c] }
func (g denseGrid) X(c int) float64    { return g.x0 + (float64(c)+0.5)*g.dx }
func (g denseGrid) Y(r int) float64    { return g.y0 + (float64(r)+0.5)*g.dy }

// binGrid builds a 2-D histogram of the points over a cols×rows grid
// spanning their bounding box.
func binGrid(x, y []float64, cols, rows int) denseGrid {
	minX, maxX := bounds(x)
	minY, maxY := bounds(y)
	g := denseGrid{
		z:    make([]float64, cols*rows),
		cols: cols, rows: rows,
		x0: minX, dx: span(minX, maxX) / float64(cols),
		y0: minY, dy: span(minY, maxY) / float64(rows),
	}
	for i := range x {
		c := int((x[i] - g.x0) / g.dx)
		r := int((y[i] - g.y0) / g.dy)
		if c >= cols {
			c = cols - 1
		}
		if r >= rows {
			r = rows - 1
		}
		g.z[r*cols+c]++
	}
	return g
}

// kdeGrid evaluates a Gaussian product-kernel density estimate of the
// points over a cols×rows grid, with per-axis Silverman bandwidths.
func kdeGrid(x, y []float64, cols, rows int) denseGrid {
	minX, maxX := bounds(x)
	minY, maxY := bounds(y)
	g := denseGrid{
		z:    make([]float64, cols*rows),
		cols: cols, rows: rows,
		x0: minX, dx: span(minX, maxX) / float64(cols),
		y0: minY, dy: span(minY, maxY) / float64(rows),
	}
	hx := silverman(x)
	hy := silverman(y)
	for r := 0; r < rows; r++ {
		gy := g.Y(r)
		for c := 0; c < cols; c++ {
			gx := g.X(c)
			var sum float64
			for i := range x {
				dx := (gx - x[i]) / hx
				dy := (gy - y[i]) / hy
				sum += math.Exp(-0.5 * (dx*dx + dy*dy))
			}
			g.z[r*cols+c] = sum / (float64(len(x)) * 2 * math.Pi * hx * hy)
		}
	}
	return g
}

func silverman(xs []float64) float64 {
	n := float64(len(xs))
	sd := stddev(xs)
	h := 1.06 * sd * math.Pow(n, -1.0/5)
	if h <= 0 {
		h = 1
	}
	return h
}

func stddev(xs []float64) float64 {
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	if len(xs) < 2 {
		return 0
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func bounds(xs []float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return min, max
}

// span widens degenerate ranges so that grid cells keep a positive size.
func span(min, max float64) float64 {
	if max > min {
		return max - min
	}
	return 1
}
