package submissions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BearBump/DriverBox/internal/broker/messages"
	"github.com/BearBump/DriverBox/internal/cache"
	"github.com/BearBump/DriverBox/internal/cache/rediscache"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/pkg/errors"
)

const rateWindow = time.Minute

type producer interface {
	PublishJSON(ctx context.Context, topic, key, kind string, v any) error
}

// Publisher hands submissions to Kafka for one driver. The worker persists them.
type Publisher struct {
	producer producer
	limiter  cache.Limiter
	topic    string
	driverID string
	limit    int64
	now      func() time.Time
}

// NewPublisher builds a per-driver publisher. A nil limiter or limit <= 0 disables rate limiting.
func NewPublisher(p producer, limiter cache.Limiter, topic, driverID string, limitPerMinute int64) *Publisher {
	return &Publisher{
		producer: p,
		limiter:  limiter,
		topic:    topic,
		driverID: driverID,
		limit:    limitPerMinute,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (p *Publisher) SubmitReceipt(ctx context.Context, r models.Receipt) (models.SubmitResult, error) {
	return p.publish(ctx, messages.Submission{
		Kind:    messages.KindReceiptSubmitted,
		Receipt: &r,
	}, r.ID)
}

func (p *Publisher) SubmitOccurrence(ctx context.Context, o models.Occurrence) (models.SubmitResult, error) {
	return p.publish(ctx, messages.Submission{
		Kind:       messages.KindOccurrenceReported,
		Occurrence: &o,
	}, o.ID)
}

func (p *Publisher) publish(ctx context.Context, msg messages.Submission, ref string) (models.SubmitResult, error) {
	now := p.now()
	if p.limiter != nil && p.limit > 0 {
		key := rediscache.WindowKey("rl:submit:"+p.driverID, now, rateWindow)
		ok, n, err := p.limiter.Allow(ctx, key, p.limit, rateWindow)
		if err != nil {
			// лимитер недоступен: не блокируем водителя
			slog.Warn("submit rate limiter unavailable", "driver_id", p.driverID, "error", err.Error())
		} else if !ok {
			slog.Warn("submit rate limited", "driver_id", p.driverID, "count", n, "limit", p.limit)
			return models.SubmitResult{OK: false, Reason: fmt.Sprintf("rate limit of %d per minute exceeded", p.limit)}, nil
		}
	}

	msg.DriverID = p.driverID
	msg.SubmittedAt = now
	if err := p.producer.PublishJSON(ctx, p.topic, p.driverID, msg.Kind, msg); err != nil {
		return models.SubmitResult{}, errors.Wrap(err, "publish submission")
	}
	return models.SubmitResult{OK: true, Reference: ref}, nil
}
