package upload

import (
	"path/filepath"
	"strings"
	"time"
)

// File describes one file that belongs to an upload task.
type File struct {
	Path     string `json:"path"`
	Name     string `json:"name,omitempty"`
	Size     int64  `json:"size"`
	Uploaded bool   `json:"uploaded"`
}

// DisplayName returns the configured name, falling back to the base of Path.
func (f File) DisplayName() string {
	if name := strings.TrimSpace(f.Name); name != "" {
		return name
	}
	if f.Path == "" {
		return ""
	}
	return filepath.Base(f.Path)
}

// Info is the per-task snapshot supplied to every lifecycle callback.
type Info struct {
	ID              string    `json:"id"`
	StartTime       time.Time `json:"start_time"`
	UploadedBytes   int64     `json:"uploaded_bytes"`
	TotalBytes      int64     `json:"total_bytes"`
	NumberOfRetries int       `json:"number_of_retries"`
	Files           []File    `json:"files,omitempty"`
}

// ProgressPercent reports upload progress as an integer in [0, 100].
func (i Info) ProgressPercent() int {
	if i.TotalBytes <= 0 || i.UploadedBytes <= 0 {
		return 0
	}
	if i.UploadedBytes >= i.TotalBytes {
		return 100
	}
	return int(i.UploadedBytes * 100 / i.TotalBytes)
}

// ElapsedTime returns the time since StartTime, or zero when the task has not
// started yet.
func (i Info) ElapsedTime(now time.Time) time.Duration {
	if i.StartTime.IsZero() || now.Before(i.StartTime) {
		return 0
	}
	return now.Sub(i.StartTime)
}

// UploadRate returns the average transfer rate in bytes per second.
func (i Info) UploadRate(now time.Time) float64 {
	elapsed := i.ElapsedTime(now)
	if elapsed < time.Second || i.UploadedBytes <= 0 {
		return 0
	}
	return float64(i.UploadedBytes) / elapsed.Seconds()
}

// SuccessfullyUploadedFiles returns the files already transferred.
func (i Info) SuccessfullyUploadedFiles() []File {
	out := make([]File, 0, len(i.Files))
	for _, f := range i.Files {
		if f.Uploaded {
			out = append(out, f)
		}
	}
	return out
}

// Filename returns the name of the file currently in flight: the first file
// not yet uploaded, or the last file once everything is done.
func (i Info) Filename() string {
	if len(i.Files) == 0 {
		return ""
	}
	for _, f := range i.Files {
		if !f.Uploaded {
			return f.DisplayName()
		}
	}
	return i.Files[len(i.Files)-1].DisplayName()
}

// ServerResponse captures what the remote endpoint answered on success.
type ServerResponse struct {
	Code    int               `json:"code"`
	Body    []byte            `json:"body,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// IsSuccessful reports whether Code is a 2xx or 3xx status.
func (r ServerResponse) IsSuccessful() bool {
	return r.Code >= 200 && r.Code < 400
}
