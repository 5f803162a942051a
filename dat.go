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
	"bufio"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ctessum/sparse"
)

// missingSentinel marks a missing value in the fixed-width table. It is
// exactly 6 characters wide, the same as a data cell; downstream consumers
// parse these files by column position.
const missingSentinel = "     *"

// WriteDat serializes one day's aggregated ozone field into the fixed-width
// ASCII table format consumed by CMAQ's OMI reader. Rows are written north
// to south; the internal grid is stored south to north, so iteration is
// reversed. Cells that are NaN or negative render as the missing sentinel.
func WriteDat(filename string, date time.Time, data *sparse.DenseArray, grid *Grid) error {
	nlat, nlon := grid.NLat(), grid.NLon()
	if data.Shape[0] != nlat || data.Shape[1] != nlon {
		return fmt.Errorf("gdasomi: field is %dx%d but grid is %dx%d",
			data.Shape[0], data.Shape[1], nlat, nlon)
	}

	ff, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("gdasomi: creating table file: %v", err)
	}
	w := bufio.NewWriter(ff)

	yearFrac := float64(date.Year()) + float64(date.YearDay()-1)/365.0

	fmt.Fprintf(w, "nlat      %d\n", nlat)
	fmt.Fprintf(w, "nlon      %d\n", nlon)
	fmt.Fprint(w, "yeardate latitude ")
	for _, lon := range grid.Lons {
		fmt.Fprintf(w, "%7.2f", lon)
	}
	fmt.Fprint(w, "\n")

	for j := nlat - 1; j >= 0; j-- {
		fmt.Fprintf(w, "%9.4f %7.1f ", yearFrac, grid.Lats[j])
		for i := 0; i < nlon; i++ {
			v := data.Get(j, i)
			if math.IsNaN(v) || v < 0 {
				fmt.Fprint(w, missingSentinel)
			} else {
				fmt.Fprintf(w, "%6d", int(math.Round(v)))
			}
		}
		fmt.Fprint(w, "\n")
	}

	if err := w.Flush(); err != nil {
		ff.Close()
		return fmt.Errorf("gdasomi: writing table file: %v", err)
	}
	return ff.Close()
}
