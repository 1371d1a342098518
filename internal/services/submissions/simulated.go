package submissions

import (
	"context"
	"time"

	"github.com/BearBump/DriverBox/internal/models"
)

// Simulated accepts everything after a fixed delay. It does not watch ctx:
// once the driver taps submit the request is considered in flight.
type Simulated struct {
	Latency time.Duration
	sleep   func(time.Duration)
}

func NewSimulated(latency time.Duration) *Simulated {
	return &Simulated{Latency: latency, sleep: time.Sleep}
}

func (s *Simulated) SubmitReceipt(_ context.Context, r models.Receipt) (models.SubmitResult, error) {
	s.wait()
	return models.SubmitResult{OK: true, Reference: r.ID}, nil
}

func (s *Simulated) SubmitOccurrence(_ context.Context, o models.Occurrence) (models.SubmitResult, error) {
	s.wait()
	return models.SubmitResult{OK: true, Reference: o.ID}, nil
}

func (s *Simulated) wait() {
	if s.Latency <= 0 {
		return
	}
	if s.sleep == nil {
		s.sleep = time.Sleep
	}
	s.sleep(s.Latency)
}
