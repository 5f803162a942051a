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
	"path/filepath"
	"testing"

	"github.com/ctessum/sparse"
	"github.com/nilsmagnus/grib/griblib"
)

func TestWrapLongitude(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{10, 10},
		{179.75, 179.75},
		{180, -180},
		{180.25, -179.75},
		{270, -90},
		{350, -10},
		{359.75, -0.25},
		{360, 0},
		{-10, -10},
	}
	for _, test := range tests {
		if got := WrapLongitude(test.in); math.Abs(got-test.want) > 1.e-10 {
			t.Errorf("WrapLongitude(%g) = %g; want %g", test.in, got, test.want)
		}
	}
}

func TestRawFromMessage(t *testing.T) {
	// A 3x4 field scanning north to south with longitudes 0, 90, 180, 270.
	// Values encode their source position as 10*row+col.
	g := &griblib.Grid0{
		Ni:  4,
		Nj:  3,
		La1: 60000000,
		Lo1: 0,
		La2: 0,
		Lo2: 270000000,
		Di:  90000000,
		Dj:  30000000,
	}
	vals := []float64{
		0, 1, 2, 3,
		10, 11, 12, 13,
		20, 21, 22, 23,
	}
	raw, err := rawFromMessage(g, vals)
	if err != nil {
		t.Fatal(err)
	}

	wantLats := []float64{0, 30, 60}
	for j, want := range wantLats {
		if math.Abs(raw.Lats[j]-want) > 1.e-10 {
			t.Errorf("lat %d = %g; want %g", j, raw.Lats[j], want)
		}
	}
	// 180 and 270 wrap to -180 and -90 and rotate to the front.
	wantLons := []float64{-180, -90, 0, 90}
	for i, want := range wantLons {
		if math.Abs(raw.Lons[i]-want) > 1.e-10 {
			t.Errorf("lon %d = %g; want %g", i, raw.Lons[i], want)
		}
	}
	// Row 0 now holds the southernmost (source row 2) data, and column 0
	// holds the data from source longitude 180 (source column 2).
	want := [][]float64{
		{22, 23, 20, 21},
		{12, 13, 10, 11},
		{2, 3, 0, 1},
	}
	for j := range want {
		for i, w := range want[j] {
			if got := raw.Data.Get(j, i); got != w {
				t.Errorf("data[%d][%d] = %g; want %g", j, i, got, w)
			}
		}
	}
}

func TestRawFromMessageErrors(t *testing.T) {
	g := &griblib.Grid0{Ni: 4, Nj: 3, La1: 60000000, Di: 90000000, Dj: 30000000}
	if _, err := rawFromMessage(g, make([]float64, 11)); err == nil {
		t.Error("want error for short data")
	}
	g = &griblib.Grid0{Ni: 1, Nj: 3}
	if _, err := rawFromMessage(g, make([]float64, 3)); err == nil {
		t.Error("want error for degenerate grid")
	}
}

func TestRegrid(t *testing.T) {
	// A bilinear function of position should regrid exactly.
	f := func(lat, lon float64) float64 { return 2*lat + 3*lon }
	raw := &RawField{
		Lats: []float64{-60, -20, 20, 60},
		Lons: []float64{-180, -60, 60},
		Data: sparse.ZerosDense(4, 3),
	}
	for j, lat := range raw.Lats {
		for i, lon := range raw.Lons {
			raw.Data.Set(f(lat, lon), j, i)
		}
	}

	grid := &Grid{
		Lats: []float64{-40, 0, 40},
		Lons: []float64{-120, 0, 30},
	}
	got := raw.Regrid(grid)
	for j, lat := range grid.Lats {
		for i, lon := range grid.Lons {
			want := f(lat, lon)
			if math.Abs(got.Get(j, i)-want) > 1.e-10 {
				t.Errorf("regrid at (%g, %g) = %g; want %g", lat, lon, got.Get(j, i), want)
			}
		}
	}
}

func TestRegridClampsLatitude(t *testing.T) {
	raw := &RawField{
		Lats: []float64{-60, 60},
		Lons: []float64{-180, 0},
		Data: sparse.ZerosDense(2, 2),
	}
	raw.Data.Set(1, 0, 0)
	raw.Data.Set(1, 0, 1)
	raw.Data.Set(5, 1, 0)
	raw.Data.Set(5, 1, 1)

	grid := &Grid{Lats: []float64{-89.875, 89.875}, Lons: []float64{-180, 0}}
	got := raw.Regrid(grid)
	if got.Get(0, 0) != 1 {
		t.Errorf("south of extent = %g; want edge value 1", got.Get(0, 0))
	}
	if got.Get(1, 0) != 5 {
		t.Errorf("north of extent = %g; want edge value 5", got.Get(1, 0))
	}
}

func TestBracketLonPeriodic(t *testing.T) {
	raw := &RawField{
		Lats: []float64{0, 1},
		Lons: []float64{-180, -90, 0, 90},
		Data: sparse.ZerosDense(2, 4),
	}
	// 135 east of the last column interpolates halfway around to the
	// wrapped first column.
	lo, hi, frac := raw.bracketLon(135)
	if lo != 3 || hi != 0 {
		t.Fatalf("bracketLon(135) = (%d, %d); want (3, 0)", lo, hi)
	}
	if math.Abs(frac-0.5) > 1.e-10 {
		t.Errorf("bracketLon(135) frac = %g; want 0.5", frac)
	}
	// 180 is equivalent to -180, which is the first column wrapped all the
	// way around.
	lo, hi, frac = raw.bracketLon(180)
	if lo != 3 || hi != 0 || math.Abs(frac-1) > 1.e-10 {
		t.Errorf("bracketLon(180) = (%d, %d, %g); want (3, 0, 1)", lo, hi, frac)
	}
}

func TestReadGDASMissingFile(t *testing.T) {
	grid, err := NewGrid(4, 4, 0.125)
	if err != nil {
		t.Fatal(err)
	}
	_, err = ReadGDAS(filepath.Join(t.TempDir(), "nonexistent.grib2"), grid)
	if err == nil {
		t.Fatal("want error")
	}
	if _, ok := err.(*SourceReadError); !ok {
		t.Errorf("error is %T; want *SourceReadError", err)
	}
}
