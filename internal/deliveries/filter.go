package deliveries

import (
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/pkg/errors"
)

type FilterType string

const (
	FilterAll       FilterType = "all"
	FilterPending   FilterType = FilterType(models.DeliveryStatusPending)
	FilterInTransit FilterType = FilterType(models.DeliveryStatusInTransit)
	FilterDelivered FilterType = FilterType(models.DeliveryStatusDelivered)
	FilterIssue     FilterType = FilterType(models.DeliveryStatusIssue)
)

var ErrUnknownFilter = errors.New("unknown filter")

// Filters lists the filter pills in display order.
var Filters = []FilterType{FilterAll, FilterPending, FilterInTransit, FilterDelivered, FilterIssue}

// ParseFilter maps user input to a FilterType. Empty input means all.
func ParseFilter(s string) (FilterType, error) {
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownFilter, "%q", s)
}

// Filter keeps the deliveries whose status equals f, preserving order.
// FilterAll returns the input as is.
func Filter(list []models.Delivery, f FilterType) []models.Delivery {
	if f == FilterAll {
		return list
	}
	out := make([]models.Delivery, 0, len(list))
	for _, d := range list {
		if d.Status == string(f) {
			out = append(out, d)
		}
	}
	return out
}

func CompletedCount(list []models.Delivery) int {
	n := 0
	for _, d := range list {
		if d.Status == models.DeliveryStatusDelivered {
			n++
		}
	}
	return n
}

// Summary feeds the driver header: progress over today's route.
type Summary struct {
	DriverName string  `json:"driverName"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Remaining  int     `json:"remaining"`
	Progress   float64 `json:"progress"`
}

func Summarize(driverName string, list []models.Delivery) Summary {
	s := Summary{DriverName: driverName, Total: len(list), Completed: CompletedCount(list)}
	s.Remaining = s.Total - s.Completed
	if s.Total > 0 {
		s.Progress = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}
