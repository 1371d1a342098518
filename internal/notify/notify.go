package notify

import (
	"context"
	"log/slog"
	"sync"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification is a toast: fire-and-forget, nothing is read back.
type Notification struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Outbox buffers notifications until the transport drains them
// into the next response to the client.
type Outbox struct {
	mu    sync.Mutex
	items []Notification
}

func NewOutbox() *Outbox { return &Outbox{} }

func (o *Outbox) Notify(_ context.Context, n Notification) {
	o.mu.Lock()
	o.items = append(o.items, n)
	o.mu.Unlock()
}

func (o *Outbox) Drain() []Notification {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.items
	o.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Log writes notifications to slog.
type Log struct {
	Attrs []any
}

func (l Log) Notify(ctx context.Context, n Notification) {
	args := append([]any{"kind", string(n.Kind), "title", n.Title}, l.Attrs...)
	if n.Kind == KindError {
		slog.WarnContext(ctx, "notification", args...)
		return
	}
	slog.InfoContext(ctx, "notification", args...)
}

// Multi fans a notification out to every notifier.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, x := range m {
		if x != nil {
			x.Notify(ctx, n)
		}
	}
}
