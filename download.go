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
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Downloader fetches GDAS grib2 files from the NOAA object store. Fetches
// are idempotent (existing files are skipped) and failures are isolated: a
// file that cannot be downloaded is logged and left out of the result set,
// with no retry.
type Downloader struct {
	// BaseURL is the object-store root, e.g.
	// https://noaa-gfs-bdp-pds.s3.amazonaws.com.
	BaseURL string

	// FilePattern names the remote file within a cycle directory; [HOUR]
	// is a wildcard for the two-digit cycle hour.
	FilePattern string

	// LocalPattern names the file on disk; empty means DefaultLocalPattern.
	LocalPattern string

	// OutDir receives the downloaded files.
	OutDir string

	// Hours are the GDAS cycle hours to fetch per day.
	Hours []int

	// MaxWorkers bounds the number of concurrent fetches.
	MaxWorkers int

	// Timeout is the fixed per-request timeout.
	Timeout time.Duration

	Log      logrus.FieldLogger
	Progress Progress
}

// downloadTask is one (date, hour) pair that needs fetching.
type downloadTask struct {
	date time.Time
	hour int
}

// URL returns the remote location of the file for one (date, hour).
func (d *Downloader) URL(date time.Time, hour int) string {
	name := strings.Replace(d.FilePattern, "[HOUR]", fmt.Sprintf("%02d", hour), -1)
	return fmt.Sprintf("%s/gfs.%s/%02d/atmos/%s",
		d.BaseURL, date.Format(dateFormat), hour, name)
}

func (d *Downloader) localFile(date time.Time, hour int) string {
	pattern := d.LocalPattern
	if pattern == "" {
		pattern = DefaultLocalPattern
	}
	name := strings.Replace(pattern, "[DATE]", date.Format(dateFormat), -1)
	name = strings.Replace(name, "[HOUR]", fmt.Sprintf("%02d", hour), -1)
	return filepath.Join(d.OutDir, name)
}

// Fetch downloads every missing (date, hour) file between start and end
// inclusive using a bounded worker pool, and returns the paths of all
// available files (already present plus newly downloaded), sorted by name.
func (d *Downloader) Fetch(ctx context.Context, start, end time.Time) ([]string, error) {
	if err := os.MkdirAll(d.OutDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("gdasomi: creating download directory: %v", err)
	}

	var tasks []downloadTask
	var files []string
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		for _, hour := range d.Hours {
			outfile := d.localFile(date, hour)
			if _, err := os.Stat(outfile); err == nil {
				d.Log.Debugf("file already exists: %s", outfile)
				files = append(files, outfile)
				continue
			}
			tasks = append(tasks, downloadTask{date: date, hour: hour})
		}
	}
	if len(tasks) == 0 {
		d.Log.Info("all files already exist, skipping download")
		sort.Strings(files)
		return files, nil
	}
	d.Log.Infof("downloading %d files (%d already exist)", len(tasks), len(files))

	progress := d.Progress
	if progress == nil {
		progress = NopProgress{}
	}
	progress.Start(len(tasks), "downloading GDAS data")

	client := &http.Client{Timeout: d.Timeout}
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.MaxWorkers)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			outfile, err := d.fetchOne(ctx, client, task)
			progress.Increment()
			if err != nil {
				// A single failed download only loses its own file.
				d.Log.Errorf("%v", err)
				d.Log.Debugf("download failure detail: %+v", err)
				return nil
			}
			mu.Lock()
			files = append(files, outfile)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	progress.Done()

	sort.Strings(files)
	return files, nil
}

// fetchOne downloads one file to its local path, writing through a
// temporary name so an interrupted transfer never leaves a partial file
// that a later run would skip.
func (d *Downloader) fetchOne(ctx context.Context, client *http.Client, task downloadTask) (string, error) {
	url := d.URL(task.date, task.hour)
	outfile := d.localFile(task.date, task.hour)
	d.Log.Infof("downloading %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &DownloadError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	tmp := outfile + ".part"
	w, err := os.Create(tmp)
	if err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		w.Close()
		os.Remove(tmp)
		return "", &DownloadError{URL: url, Err: err}
	}
	if err := w.Close(); err != nil {
		os.Remove(tmp)
		return "", &DownloadError{URL: url, Err: err}
	}
	if err := os.Rename(tmp, outfile); err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}
	d.Log.Infof("successfully downloaded to %s", outfile)
	return outfile, nil
}
