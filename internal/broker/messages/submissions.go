package messages

import (
	"time"

	"github.com/BearBump/DriverBox/internal/models"
)

const (
	KindReceiptSubmitted   = "receipt.submitted"
	KindOccurrenceReported = "occurrence.reported"
)

// Submission is the envelope the API publishes and the worker stores.
// Exactly one of Receipt and Occurrence is set, according to Kind.
type Submission struct {
	Kind        string             `json:"kind"`
	DriverID    string             `json:"driver_id"`
	SubmittedAt time.Time          `json:"submitted_at"`
	Receipt     *models.Receipt    `json:"receipt,omitempty"`
	Occurrence  *models.Occurrence `json:"occurrence,omitempty"`
}

// DeliveryID returns the delivery the payload refers to, or "" when the envelope is empty.
func (s Submission) DeliveryID() string {
	switch {
	case s.Receipt != nil:
		return s.Receipt.DeliveryID
	case s.Occurrence != nil:
		return s.Occurrence.DeliveryID
	}
	return ""
}
