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
)

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(720, 1440, 0.125)
	if err != nil {
		t.Fatal(err)
	}
	if g.NLat() != 720 || g.NLon() != 1440 {
		t.Fatalf("grid is %dx%d; want 720x1440", g.NLat(), g.NLon())
	}
	const tol = 1.e-10
	if math.Abs(g.Lats[0]+89.875) > tol {
		t.Errorf("southernmost latitude = %g; want -89.875", g.Lats[0])
	}
	if math.Abs(g.Lats[719]-89.875) > tol {
		t.Errorf("northernmost latitude = %g; want 89.875", g.Lats[719])
	}
	if g.Lons[0] != -180 {
		t.Errorf("westernmost longitude = %g; want -180", g.Lons[0])
	}
	if g.Lons[1439] != 180 {
		t.Errorf("easternmost longitude = %g; want 180", g.Lons[1439])
	}
	wantDlat := (89.875 - -89.875) / 719
	for j := 1; j < g.NLat(); j++ {
		if math.Abs(g.Lats[j]-g.Lats[j-1]-wantDlat) > tol {
			t.Fatalf("latitude spacing at %d = %g; want %g", j, g.Lats[j]-g.Lats[j-1], wantDlat)
		}
	}
}

func TestNewGridErrors(t *testing.T) {
	tests := []struct {
		name       string
		nlat, nlon int
		border     float64
	}{
		{"nlat too small", 1, 10, 0},
		{"nlon too small", 10, 0, 0},
		{"negative border", 10, 10, -1},
		{"border too large", 10, 10, 90},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewGrid(test.nlat, test.nlon, test.border)
			if err == nil {
				t.Fatal("want error")
			}
			if _, ok := err.(*ConfigError); !ok {
				t.Errorf("error is %T; want *ConfigError", err)
			}
		})
	}
}
