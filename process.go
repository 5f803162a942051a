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
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

const (
	// dateFormat is the format dates take in file names.
	dateFormat = "20060102"

	// DefaultLocalPattern names GDAS files on disk. [DATE] and [HOUR] are
	// wildcards for the data date (YYYYMMDD) and hour (two digits).
	DefaultLocalPattern = "gdas_[DATE]_[HOUR].grib2"

	outPrefix = "gdas_cmaq_"
)

// readFunc reads one source file's ozone field interpolated onto the target
// grid. It exists so tests can substitute synthetic fields for grib2 input.
type readFunc func(filename string, grid *Grid) (*sparse.DenseArray, error)

// Processor converts GDAS grib2 files into CMAQ-ready daily outputs. Dates
// are processed strictly sequentially; each date is handed to ProcessDate
// as a value, so nothing mutates shared state across iterations.
type Processor struct {
	// InputDir holds the source grib2 files; OutputDir receives the
	// per-date .nc and .dat files.
	InputDir  string
	OutputDir string

	// Hours are the GDAS cycle hours expected per day (e.g. 0, 6, 12, 18).
	Hours []int

	// LocalPattern names source files on disk; empty means
	// DefaultLocalPattern.
	LocalPattern string

	// SkipMissing selects the NaN-skipping daily mean instead of the plain
	// mean.
	SkipMissing bool

	// FillMissing enables the nearest-neighbor fill of missing cells in the
	// daily field.
	FillMissing bool

	// WriteNetCDF controls whether the per-date IOAPI NetCDF file is
	// written in addition to the ASCII table.
	WriteNetCDF bool

	Grid *Grid
	Log  logrus.FieldLogger

	// read defaults to ReadGDAS; tests replace it.
	read readFunc
}

// pattern returns the configured source file pattern with its wildcards
// intact.
func (p *Processor) pattern() string {
	if p.LocalPattern == "" {
		return DefaultLocalPattern
	}
	return p.LocalPattern
}

// LocalFileName returns the on-disk name of the source file for one
// (date, hour).
func (p *Processor) LocalFileName(date time.Time, hour int) string {
	name := strings.Replace(p.pattern(), "[DATE]", date.Format(dateFormat), -1)
	return strings.Replace(name, "[HOUR]", fmt.Sprintf("%02d", hour), -1)
}

// sourceFiles lists the configured hour files that exist on disk for date.
func (p *Processor) sourceFiles(date time.Time) []string {
	var files []string
	for _, hour := range p.Hours {
		file := filepath.Join(p.InputDir, p.LocalFileName(date, hour))
		if _, err := os.Stat(file); err == nil {
			files = append(files, file)
		}
	}
	return files
}

// ProcessDate runs the full pipeline for one calendar day: read each
// available hour, average, and write both output formats. A file that fails
// to read is logged and loses only its own contribution; the date fails
// with *NoDataError only when no file could be read at all.
func (p *Processor) ProcessDate(date time.Time) error {
	read := p.read
	if read == nil {
		read = ReadGDAS
	}

	files := p.sourceFiles(date)
	if len(files) == 0 {
		return &NoDataError{Date: date, Pattern: p.pattern()}
	}
	p.Log.Infof("processing %d files for %s", len(files), date.Format("2006-01-02"))

	fields := make([]*sparse.DenseArray, 0, len(files))
	for _, file := range files {
		p.Log.Infof("processing %s", file)
		field, err := read(file, p.Grid)
		if err != nil {
			p.Log.Errorf("%v", err)
			p.Log.Debugf("read failure detail: %+v", err)
			continue
		}
		fields = append(fields, field)
	}

	daily, err := DailyMean(date, fields, p.SkipMissing)
	if err != nil {
		return err
	}
	if p.FillMissing {
		daily = FillMissing(daily)
	}

	if err := os.MkdirAll(p.OutputDir, os.ModePerm); err != nil {
		return fmt.Errorf("gdasomi: creating output directory: %v", err)
	}

	if p.WriteNetCDF {
		outNC := filepath.Join(p.OutputDir, outPrefix+date.Format(dateFormat)+".nc")
		p.Log.Infof("writing netCDF file %s", outNC)
		if err := WriteIOAPI(outNC, date, daily, p.Grid); err != nil {
			return err
		}
	}

	outDat := filepath.Join(p.OutputDir, outPrefix+date.Format(dateFormat)+".dat")
	p.Log.Infof("writing ASCII .dat file %s", outDat)
	return WriteDat(outDat, date, daily, p.Grid)
}

// ProcessRange processes every day from start through end inclusive.
// Per-date failures are logged and do not abort the loop; later dates are
// still attempted.
func (p *Processor) ProcessRange(start, end time.Time) {
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		p.Log.Infof("processing date: %s", date.Format("2006-01-02"))
		if err := p.ProcessDate(date); err != nil {
			p.Log.Errorf("error processing %s: %v", date.Format("2006-01-02"), err)
			p.Log.Debugf("processing failure detail: %+v", err)
		}
	}
}
