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
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/gdasomi"
	"github.com/spf13/cast"
)

// configDateFormat is the format dates take on the command line and in
// configuration files.
const configDateFormat = "2006-01-02"

// GDASConfig holds the source-data settings nested under the "gdas"
// configuration key.
type GDASConfig struct {
	// Hours are the GDAS cycle hours expected per day.
	Hours []int

	// BaseURL is the root of the NOAA object store holding the files.
	BaseURL string

	// FilePattern names the remote file within a cycle directory; [HOUR]
	// is a wildcard for the two-digit cycle hour.
	FilePattern string

	// LocalPattern names the files on disk; empty means the default
	// gdas_[DATE]_[HOUR].grib2.
	LocalPattern string
}

// ConfigData is the validated, immutable set of processing parameters for
// one run. It is built once from the merged configuration (file, command
// line, environment) and never modified afterwards; the date being
// processed is passed around as a value instead of stored here.
type ConfigData struct {
	// InputDir holds the source grib2 files.
	InputDir string

	// OutputDir receives all output files.
	OutputDir string

	// StartDate and EndDate bound the processing range, inclusive.
	StartDate, EndDate time.Time

	// NLat and NLon are the target grid point counts.
	NLat, NLon int

	// LatBorder is the latitude border in degrees.
	LatBorder float64

	// UsePrevDate enables the nearest-neighbor fill of missing cells.
	UsePrevDate bool

	// CreateFullFiles controls whether the per-date IOAPI NetCDF files are
	// written in addition to the ASCII tables.
	CreateFullFiles bool

	// SkipMissing selects the NaN-skipping daily mean.
	SkipMissing bool

	// MaxWorkers bounds concurrent downloads.
	MaxWorkers int

	// DownloadTimeout is the fixed per-request timeout.
	DownloadTimeout time.Duration

	GDAS GDASConfig
}

// toIntSliceE returns a viper value as an int slice, accounting for the
// fact that it might be the JSON-like string form of a command-line flag.
func toIntSliceE(s interface{}) ([]int, error) {
	switch v := s.(type) {
	case nil:
		return nil, nil
	case string:
		var o []int
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			return nil, err
		}
		return o, nil
	}
	return cast.ToIntSliceE(s)
}

// NewConfig converts the merged viper configuration into a validated
// ConfigData. Missing required settings are reported together in one
// *gdasomi.ConfigError; configuration failures are fatal and happen before
// any processing starts.
func NewConfig(cfg *viper.Viper) (*ConfigData, error) {
	hours, err := toIntSliceE(cfg.Get("gdas.hours"))
	if err != nil {
		return nil, &gdasomi.ConfigError{Msg: fmt.Sprintf("invalid gdas.hours: %v", err)}
	}
	c := &ConfigData{
		InputDir:        cfg.GetString("input_dir"),
		OutputDir:       cfg.GetString("output_dir"),
		NLat:            cfg.GetInt("nlat"),
		NLon:            cfg.GetInt("nlon"),
		LatBorder:       cfg.GetFloat64("lat_border"),
		UsePrevDate:     cfg.GetBool("use_prev_date"),
		CreateFullFiles: cfg.GetBool("create_full_files"),
		SkipMissing:     cfg.GetBool("skip_missing"),
		MaxWorkers:      cfg.GetInt("max_workers"),
		DownloadTimeout: time.Duration(cfg.GetInt("download_timeout")) * time.Second,
		GDAS: GDASConfig{
			Hours:        hours,
			BaseURL:      cfg.GetString("gdas.base_url"),
			FilePattern:  cfg.GetString("gdas.file_pattern"),
			LocalPattern: cfg.GetString("gdas.local_pattern"),
		},
	}

	var missing []string
	for key, val := range map[string]string{
		"input_dir":  c.InputDir,
		"output_dir": c.OutputDir,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(c.GDAS.Hours) == 0 {
		missing = append(missing, "gdas.hours")
	}
	if len(missing) > 0 {
		return nil, &gdasomi.ConfigError{
			Msg: fmt.Sprintf("missing required config parameters: %s", strings.Join(missing, ", ")),
		}
	}

	start := cfg.GetString("start_date")
	if start == "" {
		start = cfg.GetString("date")
	}
	end := cfg.GetString("end_date")
	if end == "" {
		end = start
	}
	if start == "" {
		return nil, &gdasomi.ConfigError{Msg: "start and end dates must be specified in config file or command line"}
	}
	if c.StartDate, err = time.Parse(configDateFormat, start); err != nil {
		return nil, &gdasomi.ConfigError{Msg: fmt.Sprintf("invalid start date %q: %v", start, err)}
	}
	if c.EndDate, err = time.Parse(configDateFormat, end); err != nil {
		return nil, &gdasomi.ConfigError{Msg: fmt.Sprintf("invalid end date %q: %v", end, err)}
	}
	if c.EndDate.Before(c.StartDate) {
		return nil, &gdasomi.ConfigError{Msg: fmt.Sprintf("end date %s is before start date %s", end, start)}
	}
	return c, nil
}
