package deliveries

import "github.com/BearBump/DriverBox/internal/models"

// StatusLabelKey returns the translation key of a status label.
func StatusLabelKey(status string) string {
	switch status {
	case models.DeliveryStatusPending:
		return "status_pending"
	case models.DeliveryStatusInTransit:
		return "status_transit"
	case models.DeliveryStatusDelivered:
		return "status_delivered"
	case models.DeliveryStatusIssue:
		return "status_issue"
	case models.DeliveryStatusRefused:
		return "status_refused"
	}
	return status
}

// StatusClass returns the style class the client paints the status badge with.
func StatusClass(status string) string {
	switch status {
	case models.DeliveryStatusPending:
		return "status-pending"
	case models.DeliveryStatusInTransit:
		return "status-transit"
	case models.DeliveryStatusDelivered:
		return "status-success"
	case models.DeliveryStatusIssue, models.DeliveryStatusRefused:
		return "status-danger"
	}
	return ""
}

func FilterLabelKey(f FilterType) string {
	switch f {
	case FilterAll:
		return "filter_all"
	case FilterPending:
		return "filter_pending"
	case FilterInTransit:
		return "filter_in_transit"
	case FilterDelivered:
		return "filter_delivered"
	case FilterIssue:
		return "filter_issue"
	}
	return string(f)
}
