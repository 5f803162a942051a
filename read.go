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
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/ctessum/sparse"
	"github.com/nilsmagnus/grib/griblib"
)

// Selector for the total-column-ozone (TOZNE) grib2 record: discipline 0
// (meteorological products), parameter category 14 (trace gases), parameter
// number 0 (total ozone), first fixed surface 200 (entire atmosphere
// considered as a single layer).
const (
	ozoneDiscipline  = 0
	ozoneCategory    = 14
	ozoneParameter   = 0
	entireAtmSurface = 200
	microDegreeScale = 1.0e-6
)

// WrapLongitude converts a longitude from the [0, 360) convention to
// [-180, 180). The boundary maps as wrap(0)==0 and wrap(180)==-180.
func WrapLongitude(lon float64) float64 {
	w := math.Mod(lon+180, 360)
	if w < 0 {
		w += 360
	}
	return w - 180
}

// RawField is a decoded source field on its native axes. Both axes are
// ascending; Data is shaped (lat, lon).
type RawField struct {
	Lats []float64
	Lons []float64
	Data *sparse.DenseArray
}

// ReadGDAS reads the total-column-ozone field from the named GDAS grib2 file
// and interpolates it onto the target grid. Failures are reported as a
// *SourceReadError wrapping the cause.
func ReadGDAS(filename string, grid *Grid) (*sparse.DenseArray, error) {
	raw, err := decodeTotalOzone(filename)
	if err != nil {
		return nil, &SourceReadError{File: filename, Err: err}
	}
	return raw.Regrid(grid), nil
}

// decodeTotalOzone decodes the first grib2 message matching the
// total-column-ozone selector and normalizes its axes: latitudes flipped to
// ascending, longitudes wrapped to [-180, 180) and rotated to ascending
// order along with the data columns.
func decodeTotalOzone(filename string) (*RawField, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	messages, err := griblib.ReadMessages(f)
	if err != nil {
		return nil, fmt.Errorf("parsing grib2: %v", err)
	}
	for _, m := range messages {
		if m.Section0.Discipline != ozoneDiscipline {
			continue
		}
		p := m.Section4.ProductDefinitionTemplate
		if p.ParameterCategory != ozoneCategory ||
			p.ParameterNumber != ozoneParameter ||
			p.FirstSurface.Type != entireAtmSurface {
			continue
		}
		g, ok := m.Section3.Definition.(*griblib.Grid0)
		if !ok {
			return nil, fmt.Errorf("unsupported grid definition template %d", m.Section3.TemplateNumber)
		}
		return rawFromMessage(g, m.Section7.Data)
	}
	return nil, fmt.Errorf("no total column ozone record (discipline %d, category %d, parameter %d, surface %d)",
		ozoneDiscipline, ozoneCategory, ozoneParameter, entireAtmSurface)
}

// rawFromMessage builds a normalized RawField from a lat-lon grid definition
// and its row-major data values. GDAS fields scan west to east and north to
// south, with longitudes in [0, 360).
func rawFromMessage(g *griblib.Grid0, vals []float64) (*RawField, error) {
	ni, nj := int(g.Ni), int(g.Nj)
	if ni < 2 || nj < 2 {
		return nil, fmt.Errorf("degenerate grid %dx%d", nj, ni)
	}
	if len(vals) < ni*nj {
		return nil, fmt.Errorf("grid is %dx%d but message holds %d values", nj, ni, len(vals))
	}

	la1 := float64(g.La1) * microDegreeScale
	la2 := float64(g.La2) * microDegreeScale
	lo1 := float64(g.Lo1) * microDegreeScale
	di := float64(g.Di) * microDegreeScale

	lats := make([]float64, nj)
	dlat := (la2 - la1) / float64(nj-1)
	for j := range lats {
		lats[j] = la1 + float64(j)*dlat
	}

	lons := make([]float64, ni)
	for i := range lons {
		lons[i] = WrapLongitude(lo1 + float64(i)*di)
	}
	// The wrapped longitudes are ascending except for a single break where
	// values jump from just below 180 to -180. Rotate columns so the axis
	// ascends from the westernmost value.
	pivot := 0
	for i := 1; i < ni; i++ {
		if lons[i] < lons[i-1] {
			pivot = i
			break
		}
	}

	data := sparse.ZerosDense(nj, ni)
	flip := lats[0] > lats[nj-1]
	for j := 0; j < nj; j++ {
		srcRow := j
		if flip {
			srcRow = nj - 1 - j
		}
		for i := 0; i < ni; i++ {
			data.Set(vals[srcRow*ni+(i+pivot)%ni], j, i)
		}
	}
	if flip {
		for j := 0; j < nj/2; j++ {
			lats[j], lats[nj-1-j] = lats[nj-1-j], lats[j]
		}
	}
	rotated := make([]float64, ni)
	for i := range rotated {
		rotated[i] = lons[(i+pivot)%ni]
	}
	return &RawField{Lats: lats, Lons: rotated, Data: data}, nil
}

// Regrid bilinearly interpolates the field onto the target grid. Longitude
// is treated as periodic: targets east of the last source column interpolate
// against the wrapped-around first column. Latitudes outside the source
// extent clamp to the edge rows.
func (r *RawField) Regrid(grid *Grid) *sparse.DenseArray {
	out := sparse.ZerosDense(len(grid.Lats), len(grid.Lons))
	for j, lat := range grid.Lats {
		j0, j1, fy := bracket(r.Lats, lat)
		for i, lon := range grid.Lons {
			i0, i1, fx := r.bracketLon(lon)
			v00 := r.Data.Get(j0, i0)
			v01 := r.Data.Get(j0, i1)
			v10 := r.Data.Get(j1, i0)
			v11 := r.Data.Get(j1, i1)
			v0 := v00 + (v01-v00)*fx
			v1 := v10 + (v11-v10)*fx
			out.Set(v0+(v1-v0)*fy, j, i)
		}
	}
	return out
}

// bracket locates v in the ascending axis, returning the two neighboring
// indices and the fractional position between them. Values beyond either
// end clamp to the edge.
func bracket(axis []float64, v float64) (lo, hi int, frac float64) {
	n := len(axis)
	if v <= axis[0] {
		return 0, 0, 0
	}
	if v >= axis[n-1] {
		return n - 1, n - 1, 0
	}
	hi = sort.SearchFloat64s(axis, v)
	lo = hi - 1
	frac = (v - axis[lo]) / (axis[hi] - axis[lo])
	return lo, hi, frac
}

// bracketLon is bracket for the periodic longitude axis: a target beyond the
// easternmost source column interpolates between it and the westernmost
// column shifted by 360 degrees.
func (r *RawField) bracketLon(lon float64) (lo, hi int, frac float64) {
	n := len(r.Lons)
	first, last := r.Lons[0], r.Lons[n-1]
	if lon >= last || lon < first {
		span := first + 360 - last
		d := lon - last
		if d < 0 {
			d += 360
		}
		return n - 1, 0, d / span
	}
	return bracket(r.Lons, lon)
}
