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

// Package gdasomi converts total column ozone fields from NOAA GDAS grib2
// analysis files into daily average files in the formats the CMAQ air
// quality model reads in place of OMI satellite retrievals: an IOAPI
// netCDF file and a fixed-width ASCII table per day, plus a combined
// multi-day table.
package gdasomi

// Version gives the version number.
const Version = "1.1.0"
