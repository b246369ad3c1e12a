package replay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"uploadnotify/internal/logging"
	"uploadnotify/internal/notifications"
	"uploadnotify/internal/upload"
)

// Releaser frees the foreground when a task finishes.
type Releaser interface {
	Release(taskID string)
}

// Options configures a Runner.
type Options struct {
	Handler *notifications.Handler
	// Config is the per-task notification config; nil disables notifications.
	Config     *notifications.Config
	Foreground Releaser
	BaseID     int
	Logger     *slog.Logger
	Clock      func() time.Time
}

// Runner replays scripts against a handler.
type Runner struct {
	handler    *notifications.Handler
	cfg        *notifications.Config
	foreground Releaser
	baseID     int
	logger     *slog.Logger
	now        func() time.Time
	sampler    *logging.ProgressSampler
}

// Outcome is the last lifecycle state a task reached.
type Outcome string

const (
	OutcomeRunning   Outcome = "running"
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeAborted   Outcome = "aborted"
)

// TaskResult summarizes one replayed task.
type TaskResult struct {
	TaskID         string  `json:"task_id"`
	NotificationID int     `json:"notification_id"`
	Events         int     `json:"events"`
	Progress       int     `json:"progress"`
	Outcome        Outcome `json:"outcome"`
	Completed      bool    `json:"completed"`
	Error          string  `json:"error,omitempty"`
}

// Result summarizes a run.
type Result struct {
	RunID string       `json:"run_id"`
	Tasks []TaskResult `json:"tasks"`
}

// NewRunner constructs a Runner.
func NewRunner(opts Options) *Runner {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Runner{
		handler:    opts.Handler,
		cfg:        opts.Config,
		foreground: opts.Foreground,
		baseID:     opts.BaseID,
		logger:     logging.NewComponentLogger(opts.Logger, "replay"),
		now:        now,
		sampler:    logging.NewProgressSampler(25),
	}
}

type taskScript struct {
	id     string
	notify int
	events []Event
}

// Run replays events. The returned error is the first fatal configuration
// error raised by the handler; the Result is populated either way.
func (r *Runner) Run(ctx context.Context, events []Event) (Result, error) {
	if r.handler == nil {
		return Result{}, errors.New("replay: handler is required")
	}
	runID := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))

	tasks := r.group(events)
	results := make([]TaskResult, len(tasks))
	logger.Info("replay started", logging.Int("tasks", len(tasks)), logging.Int("events", len(events)))

	g, gctx := errgroup.WithContext(ctx)
	for i, task := range tasks {
		g.Go(func() error {
			res, err := r.runTask(gctx, logger, task)
			results[i] = res
			return err
		})
	}
	err := g.Wait()

	result := Result{RunID: runID, Tasks: results}
	if err != nil {
		logger.Error("replay aborted", logging.Error(err))
		return result, err
	}
	logger.Info("replay finished", logging.Int("tasks", len(tasks)))
	return result, nil
}

// group splits events per task in order of first appearance and assigns each
// task its notification identity pair.
func (r *Runner) group(events []Event) []*taskScript {
	var anonymous string
	index := make(map[string]*taskScript)
	var tasks []*taskScript
	for _, ev := range events {
		if ev.Task == "" {
			if anonymous == "" {
				anonymous = uuid.NewString()
			}
			ev.Task = anonymous
		}
		task, ok := index[ev.Task]
		if !ok {
			task = &taskScript{id: ev.Task, notify: r.baseID + 2*len(tasks)}
			index[ev.Task] = task
			tasks = append(tasks, task)
		}
		task.events = append(task.events, ev)
	}
	return tasks
}

func (r *Runner) runTask(ctx context.Context, logger *slog.Logger, task *taskScript) (TaskResult, error) {
	res := TaskResult{TaskID: task.id, NotificationID: task.notify, Outcome: OutcomeRunning}
	info := upload.Info{ID: task.id, StartTime: r.now()}
	logger = logger.With(
		logging.String(logging.FieldTaskID, task.id),
		logging.Int(logging.FieldNotificationID, task.notify),
	)
	defer r.sampler.Forget(task.id)

	for _, ev := range task.events {
		if err := ctx.Err(); err != nil {
			res.Outcome = OutcomeAborted
			return res, nil
		}
		res.Events++

		switch ev.Event {
		case KindStart:
			info.StartTime = r.now()
			info.Files = append([]upload.File(nil), ev.Files...)
			info.TotalBytes = ev.TotalBytes
			if info.TotalBytes == 0 {
				info.TotalBytes = totalSize(info.Files)
			}
			info.UploadedBytes = 0
			if err := r.handler.OnInitialize(info, task.notify, r.cfg); err != nil {
				res.Outcome = OutcomeAborted
				res.Error = err.Error()
				return res, fmt.Errorf("task %s (line %d): %w", task.id, ev.line, err)
			}
			logger.Debug("task started", logging.Int("files", len(info.Files)), logging.Int64("total_bytes", info.TotalBytes))
		case KindProgress:
			info.UploadedBytes = ev.UploadedBytes
			if ev.Retries > 0 {
				info.NumberOfRetries = ev.Retries
			}
			markUploaded(info.Files, info.UploadedBytes)
			r.handler.OnProgress(info, task.notify, r.cfg)
			if percent := info.ProgressPercent(); r.sampler.ShouldLog(task.id, percent) {
				logger.Debug("task progress", logging.Int("percent", percent))
			}
		case KindSuccess:
			info.UploadedBytes = info.TotalBytes
			for i := range info.Files {
				info.Files[i].Uploaded = true
			}
			code := ev.StatusCode
			if code == 0 {
				code = 200
			}
			r.handler.OnSuccess(info, task.notify, r.cfg, upload.ServerResponse{Code: code, Body: []byte(ev.Body)})
			res.Outcome = OutcomeSucceeded
			logger.Debug("task succeeded", logging.Int("status_code", code))
		case KindError:
			msg := ev.Error
			if msg == "" {
				msg = "upload failed"
			}
			r.handler.OnError(info, task.notify, r.cfg, errors.New(msg))
			res.Outcome = OutcomeFailed
			res.Error = msg
			logger.Debug("task failed", logging.String("reason", msg))
		case KindCancel:
			r.handler.OnError(info, task.notify, r.cfg, &upload.UserCancelledError{TaskID: task.id})
			res.Outcome = OutcomeCancelled
			logger.Debug("task cancelled")
		case KindCompleted:
			r.handler.OnCompleted(info, task.notify, r.cfg)
			if r.foreground != nil {
				r.foreground.Release(task.id)
			}
			res.Completed = true
		}
		res.Progress = info.ProgressPercent()
	}
	return res, nil
}

func totalSize(files []upload.File) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}

// markUploaded flags every file fully covered by uploaded bytes, in order.
func markUploaded(files []upload.File, uploaded int64) {
	var covered int64
	for i := range files {
		covered += files[i].Size
		files[i].Uploaded = covered <= uploaded
	}
}
