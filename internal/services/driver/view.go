package driver

import (
	"github.com/BearBump/DriverBox/internal/capture"
	"github.com/BearBump/DriverBox/internal/deliveries"
	"github.com/BearBump/DriverBox/internal/i18n"
	"github.com/BearBump/DriverBox/internal/integrations/links"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/BearBump/DriverBox/internal/navigation"
	"github.com/BearBump/DriverBox/internal/notify"
	"github.com/BearBump/DriverBox/internal/services/occurrences"
)

// View is everything the client needs to render the current screen.
// Only the block matching Screen is set.
type View struct {
	DriverID      string                `json:"driverId"`
	Screen        navigation.Screen     `json:"screen"`
	Tab           navigation.Tab        `json:"tab"`
	Language      i18n.Language         `json:"language"`
	Accessibility AccessibilityView     `json:"accessibility"`
	Header        Header                `json:"header"`
	Tabs          []TabView             `json:"tabs"`
	List          *ListView             `json:"list,omitempty"`
	Detail        *DetailView           `json:"detail,omitempty"`
	Receipt       *ReceiptView          `json:"receipt,omitempty"`
	Occurrence    *OccurrenceView       `json:"occurrence,omitempty"`
	Toasts        []notify.Notification `json:"toasts"`
}

type AccessibilityView struct {
	Accessibility
	FontPixels int                 `json:"fontPixels"`
	Languages  []i18n.LanguageInfo `json:"languages"`
}

type Header struct {
	deliveries.Summary
	Greeting       string `json:"greeting"`
	Title          string `json:"title"`
	RemainingLabel string `json:"remainingLabel"`
}

type TabView struct {
	Tab    navigation.Tab `json:"tab"`
	Label  string         `json:"label"`
	Active bool           `json:"active"`
}

type DeliveryCard struct {
	models.Delivery
	StatusLabel   string `json:"statusLabel"`
	StatusClass   string `json:"statusClass"`
	PriorityLabel string `json:"priorityLabel,omitempty"`
}

type FilterPill struct {
	Value  deliveries.FilterType `json:"value"`
	Label  string                `json:"label"`
	Active bool                  `json:"active"`
}

type ListView struct {
	Filter     deliveries.FilterType `json:"filter"`
	Filters    []FilterPill          `json:"filters"`
	CountLabel string                `json:"countLabel"`
	Items      []DeliveryCard        `json:"items"`
	Empty      string                `json:"empty,omitempty"`
}

type Links struct {
	Maps string  `json:"maps"`
	Dial *string `json:"dial,omitempty"`
}

type DetailView struct {
	Delivery          DeliveryCard `json:"delivery"`
	HighPriorityAlert string       `json:"highPriorityAlert,omitempty"`
	Links             Links        `json:"links"`
}

type ReceiptView struct {
	Delivery    DeliveryCard  `json:"delivery"`
	CameraState capture.State `json:"cameraState"`
	Photo       string        `json:"photo,omitempty"`
}

type OccurrenceView struct {
	Delivery    DeliveryCard             `json:"delivery"`
	Types       []occurrences.TypeOption `json:"types"`
	CameraState capture.State            `json:"cameraState"`
	Photos      []string                 `json:"photos"`
	MaxPhotos   int                      `json:"maxPhotos"`
	CanAddPhoto bool                     `json:"canAddPhoto"`
}

var tabOrder = []struct {
	tab navigation.Tab
	key string
}{
	{navigation.TabDeliveries, "nav_deliveries"},
	{navigation.TabReceipt, "nav_receipt"},
	{navigation.TabOccurrences, "nav_occurrences"},
	{navigation.TabProfile, "nav_profile"},
}

func card(tr *i18n.Translator, d models.Delivery) DeliveryCard {
	c := DeliveryCard{
		Delivery:    d,
		StatusLabel: tr.T(deliveries.StatusLabelKey(d.Status)),
		StatusClass: deliveries.StatusClass(d.Status),
	}
	if d.Priority == models.PriorityHigh {
		c.PriorityLabel = tr.T("priority")
	}
	return c
}

func cards(tr *i18n.Translator, list []models.Delivery) []DeliveryCard {
	out := make([]DeliveryCard, 0, len(list))
	for _, d := range list {
		out = append(out, card(tr, d))
	}
	return out
}

func linksFor(d models.Delivery) Links {
	l := Links{Maps: links.MapsURL(d)}
	if dial, ok := links.DialURL(d); ok {
		l.Dial = &dial
	}
	return l
}
