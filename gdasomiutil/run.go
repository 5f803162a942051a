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

package gdasomiutil

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gdasomi"
)

// combinedFileName is the name of the combined ASCII table within the
// output directory.
const combinedFileName = "omi_cmaq_combined.dat"

// Run executes the full pipeline for cfg's date range: optionally download
// missing source files, process each date into per-date output files, and
// optionally combine the ASCII tables into one file.
func Run(ctx context.Context, cfg *ConfigData, log logrus.FieldLogger, download, combine bool) error {
	grid, err := gdasomi.NewGrid(cfg.NLat, cfg.NLon, cfg.LatBorder)
	if err != nil {
		return err
	}

	if download {
		if _, err := Download(ctx, cfg, log); err != nil {
			return err
		}
	}

	p := &gdasomi.Processor{
		InputDir:     cfg.InputDir,
		OutputDir:    cfg.OutputDir,
		Hours:        cfg.GDAS.Hours,
		LocalPattern: cfg.GDAS.LocalPattern,
		SkipMissing:  cfg.SkipMissing,
		FillMissing:  cfg.UsePrevDate,
		WriteNetCDF:  cfg.CreateFullFiles,
		Grid:         grid,
		Log:          log,
	}
	p.ProcessRange(cfg.StartDate, cfg.EndDate)

	if combine {
		return Combine(cfg.OutputDir, log)
	}
	return nil
}

// Download fetches the missing GDAS files for cfg's date range into
// cfg.InputDir and returns the paths of all available files.
func Download(ctx context.Context, cfg *ConfigData, log logrus.FieldLogger) ([]string, error) {
	d := &gdasomi.Downloader{
		BaseURL:      cfg.GDAS.BaseURL,
		FilePattern:  cfg.GDAS.FilePattern,
		LocalPattern: cfg.GDAS.LocalPattern,
		OutDir:       cfg.InputDir,
		Hours:        cfg.GDAS.Hours,
		MaxWorkers:   cfg.MaxWorkers,
		Timeout:      cfg.DownloadTimeout,
		Log:          log,
		Progress:     gdasomi.LogProgress(log),
	}
	return d.Fetch(ctx, cfg.StartDate, cfg.EndDate)
}

// Combine concatenates the per-date ASCII tables in dir into the combined
// file within the same directory.
func Combine(dir string, log logrus.FieldLogger) error {
	return gdasomi.CombineDat(dir, filepath.Join(dir, combinedFileName), log)
}
