package models

// Статусы доставки.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusIssue     = "issue"
	DeliveryStatusRefused   = "refused"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Delivery struct {
	ID            string  `json:"id" yaml:"id"`
	Invoice       string  `json:"invoice" yaml:"invoice"`
	Client        string  `json:"client" yaml:"client"`
	Address       string  `json:"address" yaml:"address"`
	City          string  `json:"city" yaml:"city"`
	Items         int     `json:"items" yaml:"items"`
	Status        string  `json:"status" yaml:"status"`
	Priority      string  `json:"priority" yaml:"priority"`
	ScheduledTime *string `json:"scheduledTime,omitempty" yaml:"scheduled_time,omitempty"`
	Phone         *string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Notes         *string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func IsDeliveryStatus(s string) bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusDelivered,
		DeliveryStatusIssue, DeliveryStatusRefused:
		return true
	}
	return false
}

func IsPriority(s string) bool {
	return s == PriorityHigh || s == PriorityMedium || s == PriorityLow
}
