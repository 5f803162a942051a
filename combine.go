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
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
)

// datHeaderLines is the number of header lines in each per-date table file:
// the nlat line, the nlon line, and the longitude column-header line.
const datHeaderLines = 3

// CombineDat concatenates the per-date table files in dir (matching
// gdas_cmaq_*.dat, lexicographic order, which is chronological given the
// YYYYMMDD naming) into outFile. The nlat/nlon lines are kept from the
// first file only; the column-header line is dropped from every file. When
// no files match, a warning is logged and nothing is written.
func CombineDat(dir, outFile string, log logrus.FieldLogger) error {
	files, err := filepath.Glob(filepath.Join(dir, "gdas_cmaq_*.dat"))
	if err != nil {
		return fmt.Errorf("gdasomi: listing table files: %v", err)
	}
	if len(files) == 0 {
		log.Warnf("no .dat files found in %s; skipping combine", dir)
		return nil
	}
	sort.Strings(files)
	log.Infof("combining %d .dat files into %s", len(files), outFile)

	ff, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("gdasomi: creating combined file: %v", err)
	}
	w := bufio.NewWriter(ff)

	for fi, file := range files {
		if err := appendDat(w, file, fi == 0); err != nil {
			ff.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		ff.Close()
		return fmt.Errorf("gdasomi: writing combined file: %v", err)
	}
	return ff.Close()
}

// appendDat copies one per-date table into w. The first two header lines
// are copied only when first is true; the column-header line never is.
func appendDat(w *bufio.Writer, file string, first bool) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("gdasomi: opening table file: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for line := 0; scanner.Scan(); line++ {
		if line < datHeaderLines {
			if first && line < datHeaderLines-1 {
				fmt.Fprintln(w, scanner.Text())
			}
			continue
		}
		fmt.Fprintln(w, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("gdasomi: reading %s: %v", file, err)
	}
	return nil
}
