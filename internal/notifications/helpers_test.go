package notifications_test

import (
	"sync"
	"time"

	"uploadnotify/internal/notifications"
	"uploadnotify/internal/placeholders"
	"uploadnotify/internal/upload"
)

type op struct {
	kind         string
	id           int
	notification notifications.Notification
}

type recorder struct {
	mu  sync.Mutex
	ops []op
}

func (r *recorder) Notify(id int, n notifications.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op{kind: "notify", id: id, notification: n})
}

func (r *recorder) Cancel(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op{kind: "cancel", id: id})
}

func (r *recorder) snapshot() []op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]op(nil), r.ops...)
}

func (r *recorder) count(kind string, id int) int {
	total := 0
	for _, o := range r.snapshot() {
		if o.kind == kind && o.id == id {
			total++
		}
	}
	return total
}

type registry map[string]bool

func (r registry) ChannelExists(id string) bool { return r[id] }

type host struct {
	mu    sync.Mutex
	hold  bool
	calls []string
}

func (h *host) HoldForeground(taskID string, _ notifications.Notification) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, taskID)
	return h.hold
}

type fixture struct {
	delivery *recorder
	host     *host
	handler  *notifications.Handler
}

func newFixture(caps notifications.Capabilities, opts ...notifications.Option) *fixture {
	f := &fixture{delivery: &recorder{}, host: &host{}}
	f.handler = notifications.New(notifications.Dependencies{
		Delivery:     f.delivery,
		Channels:     registry{"uploads": true},
		Host:         f.host,
		Placeholders: placeholders.New(func() time.Time { return time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC) }),
		Sounds:       notifications.StaticSound("ding.ogg"),
		Capabilities: caps,
		Namespace:    "uploadnotify",
	}, opts...)
	return f
}

func channelEra() notifications.Capabilities {
	return notifications.Capabilities{SupportsNotificationChannels: true, OwnsSoundViaChannel: true}
}

func testConfig() *notifications.Config {
	return &notifications.Config{
		ChannelID: "uploads",
		Progress: notifications.StatusConfig{
			Title:        "{filename}",
			Message:      notifications.Text("Uploading {filename}"),
			IconResource: "ic_upload",
			IconColor:    "#2196F3",
		},
		Completed: notifications.StatusConfig{
			Title:         "Done",
			Message:       notifications.Text("Uploaded {filename}"),
			IconResource:  "ic_done",
			ClearOnAction: true,
		},
		Error: notifications.StatusConfig{
			Title:   "Failed",
			Message: notifications.Text("Error uploading {filename}"),
		},
		Cancelled: notifications.StatusConfig{
			Title:   "Stopped",
			Message: notifications.Text("Cancelled"),
		},
	}
}

func testInfo() upload.Info {
	return upload.Info{
		ID:         "task-1",
		StartTime:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalBytes: 100,
		Files:      []upload.File{{Path: "/tmp/a.zip", Size: 100}},
	}
}
