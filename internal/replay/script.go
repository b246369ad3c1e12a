package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"uploadnotify/internal/upload"
)

// Kind is a scripted lifecycle event.
type Kind string

const (
	KindStart     Kind = "start"
	KindProgress  Kind = "progress"
	KindSuccess   Kind = "success"
	KindError     Kind = "error"
	KindCancel    Kind = "cancel"
	KindCompleted Kind = "completed"
)

var validKinds = map[Kind]struct{}{
	KindStart:     {},
	KindProgress:  {},
	KindSuccess:   {},
	KindError:     {},
	KindCancel:    {},
	KindCompleted: {},
}

// Event is one line of a script.
type Event struct {
	Task          string        `json:"task"`
	Event         Kind          `json:"event"`
	Files         []upload.File `json:"files,omitempty"`
	TotalBytes    int64         `json:"total_bytes,omitempty"`
	UploadedBytes int64         `json:"uploaded_bytes,omitempty"`
	Retries       int           `json:"retries,omitempty"`
	StatusCode    int           `json:"status_code,omitempty"`
	Body          string        `json:"body,omitempty"`
	Error         string        `json:"error,omitempty"`

	line int
}

// Line returns the script line the event was read from.
func (e Event) Line() int { return e.line }

// LoadScript reads a script file.
func LoadScript(path string) ([]Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer file.Close()
	return ParseScript(file)
}

// ParseScript reads JSON-lines events. Blank lines and lines starting with #
// are skipped.
func ParseScript(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var events []Event
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		decoder := json.NewDecoder(bytes.NewReader([]byte(line)))
		decoder.DisallowUnknownFields()
		var ev Event
		if err := decoder.Decode(&ev); err != nil {
			return nil, fmt.Errorf("script line %d: %w", lineNo, err)
		}
		ev.Task = strings.TrimSpace(ev.Task)
		ev.Event = Kind(strings.ToLower(strings.TrimSpace(string(ev.Event))))
		if _, ok := validKinds[ev.Event]; !ok {
			return nil, fmt.Errorf("script line %d: unknown event %q", lineNo, ev.Event)
		}
		if ev.UploadedBytes < 0 || ev.TotalBytes < 0 {
			return nil, fmt.Errorf("script line %d: byte counts must not be negative", lineNo)
		}
		ev.line = lineNo
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return events, nil
}
