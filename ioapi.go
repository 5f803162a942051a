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
	"strconv"
	"time"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// IOAPI file contract constants. These follow the conventions expected by
// CMAQ for gridded (GRDDED3) lat-lon input files.
const (
	ioapiVersion = "$Id: @(#) ioapi library version 3.2 $"
	gridName     = "OMI_CMAQ"
	fileDesc     = "CMAQ subset of OMI Satellite Observations"
	ozoneVarName = "OZONE_COLUMN"

	ftypeGridded = 1      // GRDDED3
	gdtypLatLon  = 1      // plain lat-lon grid
	tstepDaily   = 240000 // HHMMSS for one whole-day step
	vgtypSigmaP  = 7      // VGSGPH3: sigma-P hybrid
)

// IOAPIDate encodes a date as the integer YYYYDDD format used by IOAPI
// time flags.
func IOAPIDate(date time.Time) int32 {
	return int32(date.Year()*1000 + date.YearDay())
}

// WriteIOAPI serializes one day's aggregated ozone field into an
// IOAPI-conventioned NetCDF file at the named path, overwriting any
// existing file. The field must be shaped (nlat, nlon) matching grid.
func WriteIOAPI(filename string, date time.Time, data *sparse.DenseArray, grid *Grid) error {
	nlat, nlon := grid.NLat(), grid.NLon()
	if data.Shape[0] != nlat || data.Shape[1] != nlon {
		return fmt.Errorf("gdasomi: field is %dx%d but grid is %dx%d",
			data.Shape[0], data.Shape[1], nlat, nlon)
	}

	h := cdf.NewHeader(
		[]string{"TSTEP", "DATE-TIME", "LAY", "VAR", "ROW", "COL"},
		[]int{0, 2, 1, 1, nlat, nlon})

	now := time.Now()
	nowTime, err := strconv.Atoi(now.Format("150405"))
	if err != nil {
		panic(err) // can't happen: the format is all digits
	}
	h.AddAttribute("", "IOAPI_VERSION", ioapiVersion)
	h.AddAttribute("", "EXEC_ID", "????????????????")
	h.AddAttribute("", "FTYPE", []int32{ftypeGridded})
	h.AddAttribute("", "CDATE", []int32{IOAPIDate(now)})
	h.AddAttribute("", "CTIME", []int32{int32(nowTime)})
	h.AddAttribute("", "WDATE", []int32{IOAPIDate(now)})
	h.AddAttribute("", "WTIME", []int32{int32(nowTime)})
	h.AddAttribute("", "SDATE", []int32{IOAPIDate(date)})
	h.AddAttribute("", "STIME", []int32{0})
	h.AddAttribute("", "TSTEP", []int32{tstepDaily})
	h.AddAttribute("", "NTHIK", []int32{1})
	h.AddAttribute("", "NCOLS", []int32{int32(nlon)})
	h.AddAttribute("", "NROWS", []int32{int32(nlat)})
	h.AddAttribute("", "NLAYS", []int32{1})
	h.AddAttribute("", "NVARS", []int32{1})
	h.AddAttribute("", "GDTYP", []int32{gdtypLatLon})
	h.AddAttribute("", "P_ALP", []float64{0})
	h.AddAttribute("", "P_BET", []float64{0})
	h.AddAttribute("", "P_GAM", []float64{0})
	h.AddAttribute("", "XCENT", []float64{0})
	h.AddAttribute("", "YCENT", []float64{0})
	h.AddAttribute("", "XORIG", []float64{-180})
	h.AddAttribute("", "YORIG", []float64{grid.Lats[0]})
	h.AddAttribute("", "XCELL", []float64{360 / float64(nlon)})
	h.AddAttribute("", "YCELL", []float64{math.Abs(grid.Lats[nlat-1]-grid.Lats[0]) / float64(nlat-1)})
	h.AddAttribute("", "VGTYP", []int32{vgtypSigmaP})
	h.AddAttribute("", "VGTOP", []float32{5000})
	h.AddAttribute("", "VGLVLS", []float32{1, 0.9975})
	h.AddAttribute("", "GDNAM", gridName)
	h.AddAttribute("", "FILEDESC", fileDesc)

	h.AddVariable("TFLAG", []string{"TSTEP", "VAR", "DATE-TIME"}, []int32{0})
	h.AddAttribute("TFLAG", "units", "<YYYYDDD,HHMMSS>")
	h.AddAttribute("TFLAG", "long_name", "TFLAG")

	h.AddVariable(ozoneVarName, []string{"TSTEP", "LAY", "ROW", "COL"}, []float32{0})
	h.AddAttribute(ozoneVarName, "long_name", "Total Column Ozone")
	h.AddAttribute(ozoneVarName, "units", "DU")
	h.AddAttribute(ozoneVarName, "var_desc", "OMI Ozone Column Density")

	h.Define()

	ff, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("gdasomi: creating IOAPI file: %v", err)
	}
	f, err := cdf.Create(ff, h)
	if err != nil {
		ff.Close()
		return fmt.Errorf("gdasomi: writing IOAPI header: %v", err)
	}

	tw := f.Writer("TFLAG", []int{0, 0, 0}, []int{1, 1, 2})
	if _, err := tw.Write([]int32{IOAPIDate(date), 0}); err != nil {
		ff.Close()
		return fmt.Errorf("gdasomi: writing TFLAG: %v", err)
	}

	data32 := make([]float32, len(data.Elements))
	for i, v := range data.Elements {
		data32[i] = float32(v)
	}
	ow := f.Writer(ozoneVarName, []int{0, 0, 0, 0}, []int{1, 1, nlat, nlon})
	if _, err := ow.Write(data32); err != nil {
		ff.Close()
		return fmt.Errorf("gdasomi: writing %s: %v", ozoneVarName, err)
	}

	if err := cdf.UpdateNumRecs(ff); err != nil {
		ff.Close()
		return fmt.Errorf("gdasomi: updating record count: %v", err)
	}
	return ff.Close()
}
