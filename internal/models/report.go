package models

import "time"

const (
	OccurrenceTypeDamage     = "damage"
	OccurrenceTypeRefused    = "refused"
	OccurrenceTypePartial    = "partial"
	OccurrenceTypeReschedule = "reschedule"
	OccurrenceTypeOther      = "other"
)

// OccurrenceTypes is the fixed, ordered set offered by the report form.
var OccurrenceTypes = []string{
	OccurrenceTypeDamage,
	OccurrenceTypeRefused,
	OccurrenceTypePartial,
	OccurrenceTypeReschedule,
	OccurrenceTypeOther,
}

func IsOccurrenceType(s string) bool {
	for _, t := range OccurrenceTypes {
		if t == s {
			return true
		}
	}
	return false
}

type Occurrence struct {
	ID          string    `json:"id"`
	DeliveryID  string    `json:"deliveryId"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Photos      []string  `json:"photos"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Receipt struct {
	ID           string    `json:"id"`
	DeliveryID   string    `json:"deliveryId"`
	Photo        string    `json:"photo"`
	Signature    *string   `json:"signature,omitempty"`
	ReceiverName string    `json:"receiverName"`
	ReceiverDoc  *string   `json:"receiverDoc,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SubmitResult is what a submission collaborator reports back.
type SubmitResult struct {
	OK        bool   `json:"ok"`
	Reference string `json:"reference,omitempty"`
	Reason    string `json:"reason,omitempty"`
}
