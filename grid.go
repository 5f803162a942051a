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

import "fmt"

// Grid is the target latitude-longitude grid that source fields are
// interpolated onto. Latitudes run south to north across
// [-90+border, 90-border]; longitudes run west to east across [-180, 180],
// both ends included. A Grid is immutable once built.
type Grid struct {
	Lats []float64
	Lons []float64
}

// NewGrid builds the target grid from the configured point counts and
// latitude border [degrees].
func NewGrid(nlat, nlon int, latBorder float64) (*Grid, error) {
	if nlat < 2 || nlon < 2 {
		return nil, &ConfigError{Msg: fmt.Sprintf("grid needs at least 2 points in each direction; got nlat=%d, nlon=%d", nlat, nlon)}
	}
	if latBorder < 0 || latBorder >= 90 {
		return nil, &ConfigError{Msg: fmt.Sprintf("lat_border must be in [0, 90); got %g", latBorder)}
	}
	return &Grid{
		Lats: linspace(-90+latBorder, 90-latBorder, nlat),
		Lons: linspace(-180, 180, nlon),
	}, nil
}

// NLat is the number of latitude points.
func (g *Grid) NLat() int { return len(g.Lats) }

// NLon is the number of longitude points.
func (g *Grid) NLon() int { return len(g.Lons) }

// linspace returns n evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	v := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range v {
		v[i] = lo + float64(i)*step
	}
	v[n-1] = hi
	return v
}
