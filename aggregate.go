/*
Copyright © 2026 the GDASOMI authors.
This file is part of GDASOMI.

GDASOMI is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GDASOMI is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GDASOMI.  If not, see <http://www.gnu.org/licenses/>.
*/

package gdasomi

import (
	"math"
	"time"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// DailyMean combines the per-hour fields for one calendar day into their
// elementwise arithmetic mean. With skipMissing false a NaN in any hour
// makes the mean NaN at that cell; with skipMissing true NaN readings are
// left out of the average and a cell is NaN only when every hour is missing
// there. A *NoDataError is returned when fields is empty.
func DailyMean(date time.Time, fields []*sparse.DenseArray, skipMissing bool) (*sparse.DenseArray, error) {
	if len(fields) == 0 {
		return nil, &NoDataError{Date: date}
	}
	if skipMissing {
		return nanMean(fields), nil
	}
	sum := sparse.ZerosDense(fields[0].Shape...)
	for _, f := range fields {
		floats.Add(sum.Elements, f.Elements)
	}
	floats.Scale(1/float64(len(fields)), sum.Elements)
	return sum, nil
}

// nanMean averages the fields cell by cell, skipping NaN readings.
func nanMean(fields []*sparse.DenseArray) *sparse.DenseArray {
	out := sparse.ZerosDense(fields[0].Shape...)
	for i := range out.Elements {
		var sum float64
		var n int
		for _, f := range fields {
			v := f.Elements[i]
			if math.IsNaN(v) {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			out.Elements[i] = math.NaN()
		} else {
			out.Elements[i] = sum / float64(n)
		}
	}
	return out
}

// FillMissing replaces NaN cells by their nearest non-missing neighbor,
// first along each longitude row and then along each latitude column. Cells
// with no non-missing neighbor on either axis stay NaN. The input array is
// not modified.
func FillMissing(data *sparse.DenseArray) *sparse.DenseArray {
	nlat, nlon := data.Shape[0], data.Shape[1]
	out := data.Copy()

	line := make([]float64, nlon)
	for j := 0; j < nlat; j++ {
		for i := 0; i < nlon; i++ {
			line[i] = out.Get(j, i)
		}
		fillNearest(line)
		for i := 0; i < nlon; i++ {
			out.Set(line[i], j, i)
		}
	}
	col := make([]float64, nlat)
	for i := 0; i < nlon; i++ {
		for j := 0; j < nlat; j++ {
			col[j] = out.Get(j, i)
		}
		fillNearest(col)
		for j := 0; j < nlat; j++ {
			out.Set(col[j], j, i)
		}
	}
	return out
}

// fillNearest replaces each NaN in line with the value of the nearest
// originally non-NaN element, preferring the earlier one on ties.
func fillNearest(line []float64) {
	n := len(line)
	src := make([]float64, n)
	copy(src, line)
	for i, v := range src {
		if !math.IsNaN(v) {
			continue
		}
		for d := 1; d < n; d++ {
			if l := i - d; l >= 0 && !math.IsNaN(src[l]) {
				line[i] = src[l]
				break
			}
			if r := i + d; r < n && !math.IsNaN(src[r]) {
				line[i] = src[r]
				break
			}
		}
	}
}
