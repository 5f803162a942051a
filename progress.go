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
	"sync"

	"github.com/sirupsen/logrus"
)

// Progress receives completion updates for long-running batch operations.
// Implementations must be safe for concurrent Increment calls.
type Progress interface {
	Start(total int, desc string)
	Increment()
	Done()
}

// NopProgress is a Progress that reports nothing.
type NopProgress struct{}

func (NopProgress) Start(int, string) {}
func (NopProgress) Increment()        {}
func (NopProgress) Done()             {}

// LogProgress returns a Progress that reports each completed item to log.
func LogProgress(log logrus.FieldLogger) Progress {
	return &logProgress{log: log}
}

type logProgress struct {
	mu    sync.Mutex
	log   logrus.FieldLogger
	desc  string
	total int
	n     int
}

func (p *logProgress) Start(total int, desc string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	p.desc = desc
	p.n = 0
	p.log.Infof("%s: starting %d items", desc, total)
}

func (p *logProgress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n++
	p.log.Infof("%s: %d/%d", p.desc, p.n, p.total)
}

func (p *logProgress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log.Infof("%s: finished %d/%d items", p.desc, p.n, p.total)
}
