package tray

import (
	"sort"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"uploadnotify/internal/notifications"
)

// Op names a delivery operation.
type Op string

const (
	OpNotify Op = "notify"
	OpCancel Op = "cancel"
)

// Entry is a notification currently shown.
type Entry struct {
	ID           int                        `json:"id"`
	Notification notifications.Notification `json:"notification"`
}

// LogEntry records one delivery operation. Title and Status are empty for
// cancellations.
type LogEntry struct {
	Seq    int                  `json:"seq"`
	Op     Op                   `json:"op"`
	ID     int                  `json:"id"`
	Status notifications.Status `json:"status,omitempty"`
	Title  string               `json:"title,omitempty"`
}

// Tray is safe for concurrent use.
type Tray struct {
	mu      sync.Mutex
	current map[int]notifications.Notification
	log     []LogEntry
}

// New returns an empty tray.
func New() *Tray {
	return &Tray{current: make(map[int]notifications.Notification)}
}

// Notify shows n at id, replacing whatever was there.
func (t *Tray) Notify(id int, n notifications.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n.Actions = append([]notifications.Action(nil), n.Actions...)
	t.current[id] = n
	t.log = append(t.log, LogEntry{Seq: len(t.log) + 1, Op: OpNotify, ID: id, Status: n.Status, Title: n.Title})
}

// Cancel removes the notification at id. Cancelling an empty slot is still
// logged.
func (t *Tray) Cancel(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.current, id)
	t.log = append(t.log, LogEntry{Seq: len(t.log) + 1, Op: OpCancel, ID: id})
}

// Get returns the notification shown at id.
func (t *Tray) Get(id int) (notifications.Notification, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.current[id]
	return n, ok
}

// Snapshot returns the shown notifications sorted by id.
func (t *Tray) Snapshot() []Entry {
	t.mu.Lock()
	out := make([]Entry, 0, len(t.current))
	for id, n := range t.current {
		out = append(out, Entry{ID: id, Notification: n})
	}
	t.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Log returns a copy of every operation in arrival order.
func (t *Tray) Log() []LogEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]LogEntry(nil), t.log...)
}

// Count returns how many operations of kind op targeted id.
func (t *Tray) Count(op Op, id int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0
	for _, e := range t.log {
		if e.Op == op && e.ID == id {
			total++
		}
	}
	return total
}

// KindLabel renders a status for display, e.g. "Completed".
func KindLabel(status notifications.Status) string {
	if status == "" {
		return ""
	}
	return cases.Title(language.Und).String(string(status))
}
