package notifications

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"uploadnotify/internal/config"
	"uploadnotify/internal/logging"
)

const (
	userAgent = "uploadnotify/0.1.0"

	// The breaker opens after this many consecutive failed publishes and
	// probes again after ntfyCooldown.
	ntfyTripAfter = 3
	ntfyCooldown  = time.Minute
)

// NtfyDelivery mirrors terminal notifications to an ntfy topic. Ongoing
// notifications and cancellations are ignored: a push message cannot be
// retracted, and progress updates would flood the topic.
type NtfyDelivery struct {
	endpoint  string
	namespace string
	client    *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	logger    *slog.Logger
}

// NewNtfyDelivery returns a delivery for the configured topic, or nil when no
// topic is set.
func NewNtfyDelivery(cfg *config.Config, logger *slog.Logger) *NtfyDelivery {
	if cfg == nil {
		return nil
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return nil
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	rps := cfg.Notifications.NtfyRateLimit
	if rps <= 0 {
		rps = 1
	}
	burst := max(cfg.Notifications.NtfyBurst, 1)

	d := &NtfyDelivery{
		endpoint:  topic,
		namespace: cfg.Notifications.Namespace,
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		logger:    logging.NewComponentLogger(logger, "ntfy"),
	}
	d.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ntfy",
		MaxRequests: 1,
		Timeout:     ntfyCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= ntfyTripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.WarnWithContext(d.logger, "ntfy circuit changed state", "ntfy_circuit_state",
				logging.String("from", from.String()),
				logging.String("to", to.String()),
				logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic and network access"),
				logging.String(logging.FieldImpact, "terminal notifications are not mirrored while the circuit is open"),
			)
		},
	})
	return d
}

// Notify publishes n when it is a terminal notification. Failures are logged
// and dropped.
func (d *NtfyDelivery) Notify(id int, n Notification) {
	if d == nil || n.Ongoing {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.client.Timeout)
	defer cancel()
	if err := d.Publish(ctx, n); err != nil {
		logging.WarnWithContext(d.logger, "ntfy publish failed", "ntfy_publish_failed",
			logging.Int(logging.FieldNotificationID, id),
			logging.String(logging.FieldStatus, string(n.Status)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic and network access"),
			logging.String(logging.FieldImpact, "notification shown locally only"),
		)
	}
}

// Cancel is a no-op for push delivery.
func (d *NtfyDelivery) Cancel(int) {}

// Publish sends n to the topic and reports transport errors. Publishes are
// rate limited, and after repeated failures they are rejected with
// gobreaker.ErrOpenState until the cooldown passes.
func (d *NtfyDelivery) Publish(ctx context.Context, n Notification) error {
	if d == nil || d.client == nil {
		return nil
	}
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("ntfy rate limit: %w", err)
		}
	}
	if d.breaker == nil {
		return d.send(ctx, n)
	}
	_, err := d.breaker.Execute(func() (interface{}, error) {
		return nil, d.send(ctx, n)
	})
	return err
}

func (d *NtfyDelivery) send(ctx context.Context, n Notification) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(n.Text))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if n.Title != "" {
		req.Header.Set("Title", n.Title)
	}
	if tags := ntfyTags(d.namespace, n.Status); tags != "" {
		req.Header.Set("Tags", tags)
	}
	if n.Status == StatusError {
		req.Header.Set("Priority", "high")
	}
	if n.ClickAction != "" {
		req.Header.Set("Click", n.ClickAction)
	}
	if len(n.Actions) > 0 {
		req.Header.Set("Actions", ntfyActions(n.Actions))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func ntfyTags(namespace string, status Status) string {
	tags := make([]string, 0, 2)
	if namespace = strings.TrimSpace(namespace); namespace != "" {
		tags = append(tags, namespace)
	}
	if status != "" {
		tags = append(tags, string(status))
	}
	return strings.Join(tags, ",")
}

// ntfyActions renders actions in ntfy's short "view, label, url" form.
func ntfyActions(actions []Action) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		parts = append(parts, fmt.Sprintf("view, %s, %s", a.Title, a.Target))
	}
	return strings.Join(parts, "; ")
}

// Fanout forwards every call to each delivery in order.
type Fanout []Delivery

// NewFanout drops nil deliveries.
func NewFanout(deliveries ...Delivery) Fanout {
	out := make(Fanout, 0, len(deliveries))
	for _, d := range deliveries {
		if d == nil {
			continue
		}
		if nd, ok := d.(*NtfyDelivery); ok && nd == nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (f Fanout) Notify(id int, n Notification) {
	for _, d := range f {
		d.Notify(id, n)
	}
}

func (f Fanout) Cancel(id int) {
	for _, d := range f {
		d.Cancel(id)
	}
}
