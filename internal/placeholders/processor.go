package placeholders

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"uploadnotify/internal/upload"
)

// Supported tokens.
const (
	Filename       = "filename"
	Progress       = "progress"
	ElapsedTime    = "elapsed_time"
	UploadRate     = "upload_rate"
	UploadedBytes  = "uploaded_bytes"
	TotalBytes     = "total_bytes"
	UploadedFiles  = "uploaded_files"
	RemainingFiles = "remaining_files"
	TotalFiles     = "total_files"
	Retries        = "retries"
	UploadID       = "upload_id"
)

// Processor substitutes placeholders. The zero value uses the wall clock.
type Processor struct {
	now func() time.Time
}

// New returns a processor. A nil clock falls back to time.Now.
func New(now func() time.Time) *Processor {
	return &Processor{now: now}
}

// Substitute replaces every known {token} in template with its value for info.
// Unknown tokens and unbalanced braces are copied through untouched.
func (p *Processor) Substitute(template string, info upload.Info) string {
	if template == "" || !strings.Contains(template, "{") {
		return template
	}

	var now time.Time
	resolved := false
	value := func(token string) (string, bool) {
		if !resolved {
			now = p.clock()
			resolved = true
		}
		return resolve(token, info, now)
	}

	var b strings.Builder
	b.Grow(len(template) + 16)
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		closing := strings.IndexByte(rest[open+1:], '}')
		if closing < 0 {
			b.WriteString(rest)
			break
		}
		closing += open + 1
		b.WriteString(rest[:open])
		token := rest[open+1 : closing]
		if v, ok := value(strings.TrimSpace(token)); ok {
			b.WriteString(v)
		} else {
			b.WriteString(rest[open : closing+1])
		}
		rest = rest[closing+1:]
	}
	return b.String()
}

func (p *Processor) clock() time.Time {
	if p == nil || p.now == nil {
		return time.Now()
	}
	return p.now()
}

func resolve(token string, info upload.Info, now time.Time) (string, bool) {
	switch token {
	case Filename:
		return info.Filename(), true
	case Progress:
		return strconv.Itoa(info.ProgressPercent()) + "%", true
	case ElapsedTime:
		return FormatElapsed(info.ElapsedTime(now)), true
	case UploadRate:
		return humanize.Bytes(uint64(info.UploadRate(now))) + "/s", true
	case UploadedBytes:
		return humanize.Bytes(uint64(max(info.UploadedBytes, 0))), true
	case TotalBytes:
		return humanize.Bytes(uint64(max(info.TotalBytes, 0))), true
	case UploadedFiles:
		return strconv.Itoa(len(info.SuccessfullyUploadedFiles())), true
	case RemainingFiles:
		return strconv.Itoa(len(info.Files) - len(info.SuccessfullyUploadedFiles())), true
	case TotalFiles:
		return strconv.Itoa(len(info.Files)), true
	case Retries:
		return strconv.Itoa(info.NumberOfRetries), true
	case UploadID:
		return info.ID, true
	default:
		return "", false
	}
}

// FormatElapsed renders durations as "45 sec", "1 min 05 sec" or
// "2 h 03 min".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Round(time.Second) / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%d h %02d min", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%d min %02d sec", minutes, seconds)
	default:
		return fmt.Sprintf("%d sec", seconds)
	}
}
