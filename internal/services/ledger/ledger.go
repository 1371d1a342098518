package ledger

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BearBump/DriverBox/internal/broker/kafka"
	"github.com/BearBump/DriverBox/internal/broker/messages"
	"github.com/BearBump/DriverBox/internal/metrics"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/pkg/errors"
)

// ErrMalformed marks a message that can never be stored. It is skipped, not retried.
var ErrMalformed = errors.New("malformed submission")

type Repository interface {
	SaveReceipt(ctx context.Context, driverID string, r models.Receipt) (bool, error)
	SaveOccurrence(ctx context.Context, driverID string, o models.Occurrence) (bool, error)
}

type Consumer interface {
	Consume(ctx context.Context, handler kafka.Handler) error
}

// Ledger persists submissions published by the API.
type Ledger struct {
	repo    Repository
	backoff time.Duration

	startedAtUnixNano   int64
	lastMessageUnixNano atomic.Int64
	totalConsumed       atomic.Int64
	totalStored         atomic.Int64
	totalDuplicates     atomic.Int64
	totalSkipped        atomic.Int64
	totalErrors         atomic.Int64
	lastErrorMu         sync.Mutex
	lastError           string
}

func New(repo Repository) *Ledger {
	return &Ledger{
		repo:              repo,
		backoff:           2 * time.Second,
		startedAtUnixNano: time.Now().UTC().UnixNano(),
	}
}

func (l *Ledger) WithBackoff(d time.Duration) *Ledger {
	if d > 0 {
		l.backoff = d
	}
	return l
}

type Stats struct {
	StartedAt       time.Time  `json:"startedAt"`
	LastMessageAt   *time.Time `json:"lastMessageAt,omitempty"`
	TotalConsumed   int64      `json:"totalConsumed"`
	TotalStored     int64      `json:"totalStored"`
	TotalDuplicates int64      `json:"totalDuplicates"`
	TotalSkipped    int64      `json:"totalSkipped"`
	TotalErrors     int64      `json:"totalErrors"`
	LastError       string     `json:"lastError,omitempty"`
}

func (l *Ledger) Stats() Stats {
	st := Stats{
		StartedAt:       time.Unix(0, l.startedAtUnixNano).UTC(),
		TotalConsumed:   l.totalConsumed.Load(),
		TotalStored:     l.totalStored.Load(),
		TotalDuplicates: l.totalDuplicates.Load(),
		TotalSkipped:    l.totalSkipped.Load(),
		TotalErrors:     l.totalErrors.Load(),
	}
	if v := l.lastMessageUnixNano.Load(); v > 0 {
		t := time.Unix(0, v).UTC()
		st.LastMessageAt = &t
	}
	l.lastErrorMu.Lock()
	st.LastError = l.lastError
	l.lastErrorMu.Unlock()
	return st
}

func (l *Ledger) setLastError(err error) {
	l.totalErrors.Add(1)
	l.lastErrorMu.Lock()
	l.lastError = err.Error()
	l.lastErrorMu.Unlock()
}

// Run consumes until ctx is done. A failed batch is retried after backoff
// from the last committed offset.
func (l *Ledger) Run(ctx context.Context, c Consumer) error {
	for {
		err := c.Consume(ctx, l.Handle)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			l.setLastError(err)
			slog.Error("ledger consume", "error", err.Error())
		}

		t := time.NewTimer(l.backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Handle stores one message. Malformed messages are logged and acknowledged,
// storage errors are returned so the offset is not committed.
func (l *Ledger) Handle(ctx context.Context, msg kafka.Message) error {
	l.totalConsumed.Add(1)
	l.lastMessageUnixNano.Store(time.Now().UTC().UnixNano())

	sub, err := decode(msg)
	if err != nil {
		l.totalSkipped.Add(1)
		l.setLastError(err)
		slog.Warn("skip submission", "offset", msg.Offset, "error", err.Error())
		return nil
	}

	var inserted bool
	switch sub.Kind {
	case messages.KindReceiptSubmitted:
		inserted, err = l.repo.SaveReceipt(ctx, sub.DriverID, *sub.Receipt)
	case messages.KindOccurrenceReported:
		inserted, err = l.repo.SaveOccurrence(ctx, sub.DriverID, *sub.Occurrence)
	}
	if err != nil {
		l.setLastError(err)
		return errors.Wrapf(err, "store %s", sub.Kind)
	}

	if !inserted {
		l.totalDuplicates.Add(1)
		slog.Info("duplicate submission", "kind", sub.Kind, "delivery_id", sub.DeliveryID())
		return nil
	}
	l.totalStored.Add(1)
	metrics.StoredSubmissionsTotal.WithLabelValues(sub.Kind).Inc()
	slog.Info("submission stored", "kind", sub.Kind, "driver_id", sub.DriverID, "delivery_id", sub.DeliveryID())
	return nil
}

func decode(msg kafka.Message) (messages.Submission, error) {
	var sub messages.Submission
	if err := json.Unmarshal(msg.Value, &sub); err != nil {
		return sub, errors.Wrap(ErrMalformed, err.Error())
	}
	if h, ok := msg.Headers[kafka.HeaderKind]; ok && h != sub.Kind {
		return sub, errors.Wrapf(ErrMalformed, "kind header %q does not match payload %q", h, sub.Kind)
	}
	if sub.DriverID == "" {
		return sub, errors.Wrap(ErrMalformed, "driver_id is required")
	}

	switch sub.Kind {
	case messages.KindReceiptSubmitted:
		if sub.Receipt == nil || sub.Receipt.ID == "" || sub.Receipt.DeliveryID == "" {
			return sub, errors.Wrap(ErrMalformed, "receipt payload is incomplete")
		}
	case messages.KindOccurrenceReported:
		if sub.Occurrence == nil || sub.Occurrence.ID == "" || sub.Occurrence.DeliveryID == "" {
			return sub, errors.Wrap(ErrMalformed, "occurrence payload is incomplete")
		}
		if !models.IsOccurrenceType(sub.Occurrence.Type) {
			return sub, errors.Wrapf(ErrMalformed, "occurrence type %q", sub.Occurrence.Type)
		}
	default:
		return sub, errors.Wrapf(ErrMalformed, "kind %q", sub.Kind)
	}
	return sub, nil
}
