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

// Command gdasomi is a command-line interface for converting GDAS ozone
// analyses into CMAQ input files.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/gdasomi/gdasomiutil"
)

func main() {
	if err := gdasomiutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
