package upload_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"uploadnotify/internal/upload"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		uploaded int64
		total    int64
		want     int
	}{
		{name: "unknown total", uploaded: 10, total: 0, want: 0},
		{name: "not started", uploaded: 0, total: 100, want: 0},
		{name: "partial", uploaded: 42, total: 100, want: 42},
		{name: "rounds down", uploaded: 999, total: 1000, want: 99},
		{name: "complete", uploaded: 100, total: 100, want: 100},
		{name: "overshoot clamps", uploaded: 150, total: 100, want: 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := upload.Info{UploadedBytes: tc.uploaded, TotalBytes: tc.total}
			if got := info.ProgressPercent(); got != tc.want {
				t.Fatalf("ProgressPercent() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestElapsedTimeAndRate(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	info := upload.Info{StartTime: start, UploadedBytes: 2048}

	if got := info.ElapsedTime(start.Add(4 * time.Second)); got != 4*time.Second {
		t.Fatalf("unexpected elapsed time %s", got)
	}
	if got := info.ElapsedTime(start.Add(-time.Second)); got != 0 {
		t.Fatalf("expected zero elapsed before start, got %s", got)
	}
	if got := info.UploadRate(start.Add(4 * time.Second)); got != 512 {
		t.Fatalf("unexpected rate %f", got)
	}
	if got := (upload.Info{}).UploadRate(start); got != 0 {
		t.Fatalf("expected zero rate for unstarted task, got %f", got)
	}
}

func TestFilenameTracksFirstPendingFile(t *testing.T) {
	info := upload.Info{Files: []upload.File{
		{Path: "/tmp/a.zip", Uploaded: true},
		{Path: "/tmp/b.zip"},
		{Path: "/tmp/c.zip"},
	}}
	if got := info.Filename(); got != "b.zip" {
		t.Fatalf("expected b.zip, got %q", got)
	}

	info.Files[1].Uploaded = true
	info.Files[2].Uploaded = true
	if got := info.Filename(); got != "c.zip" {
		t.Fatalf("expected last file once done, got %q", got)
	}

	named := upload.Info{Files: []upload.File{{Path: "/x/y.bin", Name: "report"}}}
	if got := named.Filename(); got != "report" {
		t.Fatalf("expected explicit name, got %q", got)
	}
	if got := (upload.Info{}).Filename(); got != "" {
		t.Fatalf("expected empty filename, got %q", got)
	}
	if got := len(info.SuccessfullyUploadedFiles()); got != 3 {
		t.Fatalf("expected 3 uploaded files, got %d", got)
	}
}

func TestUserCancelledClassification(t *testing.T) {
	wrapped := fmt.Errorf("worker stopped: %w", &upload.UserCancelledError{TaskID: "t1"})
	if !upload.IsUserCancelled(wrapped) {
		t.Fatal("expected wrapped cancellation to be detected")
	}
	if !errors.Is(upload.ErrUserCancelled, upload.ErrUserCancelled) {
		t.Fatal("sentinel must match itself")
	}
	if upload.IsUserCancelled(errors.New("connection reset")) {
		t.Fatal("generic error must not classify as cancellation")
	}
	if upload.IsUserCancelled(nil) {
		t.Fatal("nil must not classify as cancellation")
	}
	if msg := (&upload.UserCancelledError{TaskID: "t1"}).Error(); msg != "upload cancelled by user: t1" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestServerResponseIsSuccessful(t *testing.T) {
	if !(upload.ServerResponse{Code: 201}).IsSuccessful() {
		t.Fatal("201 should be successful")
	}
	if (upload.ServerResponse{Code: 500}).IsSuccessful() {
		t.Fatal("500 should not be successful")
	}
}
