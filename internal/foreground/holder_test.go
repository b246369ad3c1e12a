package foreground_test

import (
	"testing"

	"uploadnotify/internal/foreground"
	"uploadnotify/internal/notifications"
)

func TestDisabledHolderNeverHolds(t *testing.T) {
	h := foreground.New(false, nil)
	if h.HoldForeground("a", notifications.Notification{Title: "a"}) {
		t.Fatal("disabled holder must not hold")
	}
	if task, _, held := h.Current(); task != "" || held {
		t.Fatalf("expected no foreground task, got %q held=%v", task, held)
	}
}

func TestFirstTaskOwnsForeground(t *testing.T) {
	h := foreground.New(true, nil)

	if !h.HoldForeground("a", notifications.Notification{Text: "a 0%"}) {
		t.Fatal("first task should be held")
	}
	if h.HoldForeground("b", notifications.Notification{Text: "b 0%"}) {
		t.Fatal("second task must be delivered normally")
	}
	if !h.HoldForeground("a", notifications.Notification{Text: "a 50%"}) {
		t.Fatal("owner should stay held")
	}

	task, latest, held := h.Current()
	if task != "a" || !held || latest.Text != "a 50%" {
		t.Fatalf("expected latest notification of a, got %q %+v held=%v", task, latest, held)
	}
}

func TestReleaseHandsOverForeground(t *testing.T) {
	h := foreground.New(true, nil)
	h.HoldForeground("a", notifications.Notification{})

	h.Release("b")
	if task, _, _ := h.Current(); task != "a" {
		t.Fatalf("release by non-owner must be ignored, owner is %q", task)
	}

	h.Release("a")
	if task, _, held := h.Current(); task != "" || held {
		t.Fatalf("expected foreground free, got %q held=%v", task, held)
	}
	if !h.HoldForeground("b", notifications.Notification{Text: "b"}) {
		t.Fatal("next task should take over")
	}
}

func TestNilHolder(t *testing.T) {
	var h *foreground.Holder
	if h.HoldForeground("a", notifications.Notification{}) {
		t.Fatal("nil holder must not hold")
	}
	h.Release("a")
}
