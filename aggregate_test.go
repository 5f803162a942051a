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
	"testing"
	"time"

	"github.com/ctessum/sparse"
)

func TestDailyMean(t *testing.T) {
	a := sparse.ZerosDense(2, 2)
	b := sparse.ZerosDense(2, 2)
	for i := range a.Elements {
		a.Elements[i] = 10
		b.Elements[i] = 20
	}
	got, err := DailyMean(time.Now(), []*sparse.DenseArray{a, b}, false)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got.Elements {
		if v != 15 {
			t.Errorf("element %d = %g; want 15", i, v)
		}
	}
}

func TestDailyMeanSingleField(t *testing.T) {
	a := sparse.ZerosDense(2, 2)
	a.Elements[3] = 7
	got, err := DailyMean(time.Now(), []*sparse.DenseArray{a}, false)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got.Elements {
		if v != a.Elements[i] {
			t.Errorf("element %d = %g; want %g", i, v, a.Elements[i])
		}
	}
}

func TestDailyMeanMissing(t *testing.T) {
	a := sparse.ZerosDense(1, 2)
	b := sparse.ZerosDense(1, 2)
	a.Elements[0], a.Elements[1] = 10, math.NaN()
	b.Elements[0], b.Elements[1] = 20, 30

	// Plain mean: one missing hour makes the day missing at that cell.
	got, err := DailyMean(time.Now(), []*sparse.DenseArray{a, b}, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.Elements[0] != 15 {
		t.Errorf("valid cell = %g; want 15", got.Elements[0])
	}
	if !math.IsNaN(got.Elements[1]) {
		t.Errorf("cell with missing hour = %g; want NaN", got.Elements[1])
	}

	// Skipping mean: the valid hours still average.
	got, err = DailyMean(time.Now(), []*sparse.DenseArray{a, b}, true)
	if err != nil {
		t.Fatal(err)
	}
	if got.Elements[0] != 15 {
		t.Errorf("valid cell = %g; want 15", got.Elements[0])
	}
	if got.Elements[1] != 30 {
		t.Errorf("cell with missing hour = %g; want 30", got.Elements[1])
	}
}

func TestDailyMeanNoData(t *testing.T) {
	date := time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC)
	_, err := DailyMean(date, nil, false)
	if err == nil {
		t.Fatal("want error")
	}
	if _, ok := err.(*NoDataError); !ok {
		t.Fatalf("error is %T; want *NoDataError", err)
	}
}

func TestFillMissing(t *testing.T) {
	nan := math.NaN()
	data := sparse.ZerosDense(3, 3)
	vals := []float64{
		1, nan, 3,
		nan, nan, nan,
		7, 8, 9,
	}
	copy(data.Elements, vals)

	got := FillMissing(data)
	want := []float64{
		1, 1, 3, // row fill takes the nearer (earlier on ties) neighbor
		1, 1, 3, // empty row fills from the columns
		7, 8, 9,
	}
	for i, w := range want {
		if got.Elements[i] != w {
			t.Errorf("element %d = %g; want %g", i, got.Elements[i], w)
		}
	}

	// The input must not change.
	for i, v := range vals {
		if math.IsNaN(v) != math.IsNaN(data.Elements[i]) {
			t.Fatalf("input element %d modified", i)
		}
	}
}

func TestFillMissingAllMissing(t *testing.T) {
	data := sparse.ZerosDense(2, 2)
	for i := range data.Elements {
		data.Elements[i] = math.NaN()
	}
	got := FillMissing(data)
	for i, v := range got.Elements {
		if !math.IsNaN(v) {
			t.Errorf("element %d = %g; want NaN", i, v)
		}
	}
}
