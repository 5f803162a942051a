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

// Package gdasomiutil holds the command-line interface and configuration
// plumbing for the gdasomi converter.
package gdasomiutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gdasomi"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log is the logger commands report to. The --verbose flag switches it to
// debug level.
var Log = logrus.New()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to gdasomi.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose enables debug-level log output.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "start_date",
			usage: `
              start_date is the first date to process, in YYYY-MM-DD format.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), downloadCmd.Flags()},
		},
		{
			name: "end_date",
			usage: `
              end_date is the last date to process (inclusive), in YYYY-MM-DD
              format. If unspecified, only start_date is processed.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), downloadCmd.Flags()},
		},
		{
			name: "input_dir",
			usage: `
              input_dir is the directory holding the GDAS grib2 source files.
              The download command writes fetched files here.`,
			defaultVal: "data/gdas",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), downloadCmd.Flags()},
		},
		{
			name: "output_dir",
			usage: `
              output_dir is the directory that receives the per-date output
              files and the combined table.`,
			defaultVal: "output",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), combineCmd.Flags()},
		},
		{
			name: "nlat",
			usage: `
              nlat is the number of latitude points in the target grid.`,
			defaultVal: 720,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "nlon",
			usage: `
              nlon is the number of longitude points in the target grid.`,
			defaultVal: 1440,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "lat_border",
			usage: `
              lat_border is the number of degrees to pull the northernmost and
              southernmost grid points in from the poles.`,
			defaultVal: 0.125,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "use_prev_date",
			usage: `
              use_prev_date fills cells that are missing in the daily average
              with the nearest valid value along the same grid row or column.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "create_full_files",
			usage: `
              create_full_files writes the per-date IOAPI netCDF files in
              addition to the ASCII tables.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "skip_missing",
			usage: `
              skip_missing averages over only the hours with valid data in each
              grid cell instead of treating any missing hour as missing for the
              whole day.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "download",
			usage: `
              download fetches any missing source files from the NOAA object
              store before processing.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "combine",
			usage: `
              combine concatenates the per-date ASCII tables into a single
              omi_cmaq_combined.dat after processing.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "max_workers",
			usage: `
              max_workers bounds the number of concurrent downloads.`,
			defaultVal: 4,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), downloadCmd.Flags()},
		},
		{
			name: "download_timeout",
			usage: `
              download_timeout is the per-request timeout in seconds.`,
			defaultVal: 60,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), downloadCmd.Flags()},
		},
		{
			name: "gdas.hours",
			usage: `
              gdas.hours lists the GDAS cycle hours expected per day.`,
			defaultVal: []int{0, 6, 12, 18},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), downloadCmd.Flags()},
		},
		{
			name: "gdas.base_url",
			usage: `
              gdas.base_url is the root of the NOAA object store holding the
              GDAS analysis files.`,
			defaultVal: "https://noaa-gfs-bdp-pds.s3.amazonaws.com",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), downloadCmd.Flags()},
		},
		{
			name: "gdas.file_pattern",
			usage: `
              gdas.file_pattern names the remote file within a cycle directory.
              [HOUR] should be used as a wild card for the two-digit cycle
              hour.`,
			defaultVal: "gfs.t[HOUR]z.pgrb2.0p25.anl",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), downloadCmd.Flags()},
		},
		{
			name: "gdas.local_pattern",
			usage: `
              gdas.local_pattern names the source files on disk. [DATE] and
              [HOUR] should be used as wild cards for the data date (YYYYMMDD)
              and two-digit cycle hour. If unspecified,
              gdas_[DATE]_[HOUR].grib2 is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), downloadCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GDASOMI")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(downloadCmd)
	Root.AddCommand(combineCmd)
}

// setConfig finds and reads in the configuration file, if there is one, and
// adjusts the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("gdasomi: problem reading configuration file: %v", err)
		}
	}
	if Cfg.GetBool("verbose") {
		Log.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "gdasomi",
	Short: "Convert GDAS ozone analyses to CMAQ input files.",
	Long: `gdasomi converts total column ozone fields from NOAA GDAS grib2
analysis files into daily average files in the formats the CMAQ air quality
model reads in place of OMI satellite retrievals.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'GDASOMI_var'
where 'var' is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration
information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of gdasomi.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("gdasomi v%s\n", gdasomi.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process GDAS files into daily CMAQ inputs.",
	Long: `run averages the total column ozone fields for each day in the
configured date range onto the target grid, writes the per-date output files,
and optionally downloads missing source files first and combines the results
afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := NewConfig(Cfg)
		if err != nil {
			return err
		}
		return Run(cmd.Context(), cfg, Log, Cfg.GetBool("download"), Cfg.GetBool("combine"))
	},
	DisableAutoGenTag: true,
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Fetch GDAS source files.",
	Long: `download fetches the GDAS analysis files for the configured date
range from the NOAA object store, skipping files that already exist locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := NewConfig(Cfg)
		if err != nil {
			return err
		}
		_, err = Download(cmd.Context(), cfg, Log)
		return err
	},
	DisableAutoGenTag: true,
}

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine per-date tables into one file.",
	Long: `combine concatenates the per-date ASCII tables in the output
directory into a single omi_cmaq_combined.dat, keeping one header.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Combine(Cfg.GetString("output_dir"), Log)
	},
	DisableAutoGenTag: true,
}
