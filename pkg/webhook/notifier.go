// Package webhook posts embed notifications to a Discord-style webhook.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	loggerpkg "github.com/minhyannv/askloop/pkg/logger"
)

// Notifier sends notifications to a single webhook URL.
type Notifier struct {
	client *resty.Client
	url    string
	now    func() time.Time
	logger loggerpkg.Logger
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		n.now = now
	}
}

// WithLogger injects a logger.
func WithLogger(l loggerpkg.Logger) Option {
	return func(n *Notifier) {
		n.logger = loggerpkg.OrNop(l)
	}
}

// WithTimeout bounds each POST.
func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) {
		n.client.SetTimeout(d)
	}
}

// New builds a Notifier for url. An empty url is accepted; every send then fails.
func New(url string, opts ...Option) *Notifier {
	n := &Notifier{
		client: resty.New(),
		url:    strings.TrimSpace(url),
		now:    time.Now,
		logger: loggerpkg.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Send posts n as a single embed with a UTC timestamp.
func (w *Notifier) Send(ctx context.Context, n Notification) error {
	if w.url == "" {
		return errors.New("webhook url is not set")
	}

	body := n.toPayload(w.now().UTC().Format(time.RFC3339))
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("post webhook: status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}

// Notify sends n and logs the outcome. Delivery failures never reach the caller.
func (w *Notifier) Notify(ctx context.Context, n Notification) {
	if err := w.Send(ctx, n); err != nil {
		w.logger.Warn("failed to send notification", loggerpkg.Fields{
			"title": n.Title,
			"error": err.Error(),
		})
		return
	}
	w.logger.Info("notification sent", loggerpkg.Fields{"title": n.Title})
}
