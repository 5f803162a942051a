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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ctessum/sparse"
)

func TestWriteDat(t *testing.T) {
	grid := &Grid{Lats: []float64{-10, 10}, Lons: []float64{0, 1}}
	data := sparse.ZerosDense(2, 2)
	data.Set(math.NaN(), 0, 0) // missing
	data.Set(3.6, 0, 1)        // rounds up
	data.Set(5.4, 1, 0)        // rounds down
	data.Set(-1, 1, 1)         // negative renders as missing

	date := time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC)
	file := filepath.Join(t.TempDir(), "gdas_cmaq_20230715.dat")
	if err := WriteDat(file, date, data, grid); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	// Rows run north to south; 2023-07-15 is day 196, so the year
	// fraction is 2023 + 195/365.
	want := "nlat      2\n" +
		"nlon      2\n" +
		"yeardate latitude    0.00   1.00\n" +
		"2023.5342    10.0      5     *\n" +
		"2023.5342   -10.0      *     4\n"
	if string(got) != want {
		t.Errorf("got:\n%q\nwant:\n%q", string(got), want)
	}
}

func TestWriteDatShapeMismatch(t *testing.T) {
	grid := &Grid{Lats: []float64{-10, 10}, Lons: []float64{0, 1}}
	data := sparse.ZerosDense(3, 2)
	err := WriteDat(filepath.Join(t.TempDir(), "out.dat"), time.Now(), data, grid)
	if err == nil {
		t.Fatal("want error")
	}
}
