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
	"time"
)

// ConfigError is returned when required configuration settings are missing
// or invalid. It is fatal: no processing should start after one is reported.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "gdasomi: configuration: " + e.Msg
}

// SourceReadError is returned when a source grib2 file cannot be read or the
// total-column-ozone record is absent from it. It only aborts the
// contribution of the file it names.
type SourceReadError struct {
	File string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("gdasomi: reading source file %s: %v", e.File, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// NoDataError is returned when no readable source files exist for a
// processing date. It aborts that date only; the date-range loop continues.
type NoDataError struct {
	Date    time.Time
	Pattern string
}

func (e *NoDataError) Error() string {
	if e.Pattern == "" {
		return fmt.Sprintf("gdasomi: no GDAS files found for date %s", e.Date.Format("2006-01-02"))
	}
	return fmt.Sprintf("gdasomi: no GDAS files found for date %s using pattern %s",
		e.Date.Format("2006-01-02"), e.Pattern)
}

// DownloadError is returned when fetching one remote file fails. The file is
// simply absent from the result set; there is no retry.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("gdasomi: downloading %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }
