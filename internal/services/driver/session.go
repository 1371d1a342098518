package driver

import (
	"context"
	"sync"
	"time"

	"github.com/BearBump/DriverBox/internal/capture"
	"github.com/BearBump/DriverBox/internal/deliveries"
	"github.com/BearBump/DriverBox/internal/i18n"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/BearBump/DriverBox/internal/navigation"
	"github.com/BearBump/DriverBox/internal/notify"
	"github.com/BearBump/DriverBox/internal/services/occurrences"
	"github.com/BearBump/DriverBox/internal/services/receipts"
	"github.com/pkg/errors"
)

// Session is one driver's screen state. All access goes through mu.
type Session struct {
	mu sync.Mutex

	driverID string
	nav      *navigation.Controller
	tr       *i18n.Translator
	a11y     Accessibility
	filter   deliveries.FilterType
	outbox   *notify.Outbox
	notifier notify.Notifier

	receipt    *receipts.Flow
	occurrence *occurrences.Flow

	lastSeen time.Time
	closed   bool
}

// snapshot is what survives an API restart.
type snapshot struct {
	Nav           navigation.State      `json:"nav"`
	Language      i18n.Language         `json:"language"`
	Accessibility Accessibility         `json:"accessibility"`
	Filter        deliveries.FilterType `json:"filter"`
}

func newSession(driverID string, lang i18n.Language) *Session {
	out := notify.NewOutbox()
	return &Session{
		driverID: driverID,
		nav:      navigation.New(),
		tr:       i18n.New(lang),
		a11y:     defaultAccessibility(),
		filter:   deliveries.FilterAll,
		outbox:   out,
		notifier: notify.Multi{out, notify.Log{Attrs: []any{"driver_id", driverID}}},
	}
}

// restore applies a saved snapshot. The selected delivery is looked up again
// in store: a delivery that is gone drops the session back to the list.
func (s *Session) restore(sn snapshot, store *deliveries.Store) {
	if sel := sn.Nav.Selected; sel != nil {
		if d, ok := store.ByID(sel.ID); ok {
			sn.Nav.Selected = &d
		} else {
			sn.Nav.Selected = nil
		}
	}
	s.nav = navigation.Restore(sn.Nav)
	if _, err := i18n.ParseLanguage(string(sn.Language)); err == nil {
		s.tr.SetLanguage(sn.Language)
	}
	if _, err := ParseFontSize(string(sn.Accessibility.FontSize)); err == nil {
		s.a11y = sn.Accessibility
	}
	if f, err := deliveries.ParseFilter(string(sn.Filter)); err == nil {
		s.filter = f
	}
}

func (s *Session) snapshot() snapshot {
	return snapshot{
		Nav:           s.nav.State(),
		Language:      s.tr.Language(),
		Accessibility: s.a11y,
		Filter:        s.filter,
	}
}

// syncFlows opens the form of the current screen and tears down the others.
// A form is rebuilt when the selected delivery changed underneath it.
func (s *Session) syncFlows(cam capture.Camera, sub Submitter) {
	screen := s.nav.Screen()
	sel, hasSel := s.nav.Selected()

	if s.receipt != nil && (screen != navigation.ScreenReceipt || !hasSel || s.receipt.Delivery().ID != sel.ID) {
		s.receipt.Close()
		s.receipt = nil
	}
	if s.occurrence != nil && (screen != navigation.ScreenOccurrence || !hasSel || s.occurrence.Delivery().ID != sel.ID) {
		s.occurrence.Close()
		s.occurrence = nil
	}
	if !hasSel {
		return
	}

	switch {
	case screen == navigation.ScreenReceipt && s.receipt == nil:
		s.receipt = receipts.New(sel, receipts.Deps{
			Camera: cam, Submitter: sub, Notifier: s.notifier, Tr: s.tr, Nav: s.nav,
		})
	case screen == navigation.ScreenOccurrence && s.occurrence == nil:
		s.occurrence = occurrences.New(sel, occurrences.Deps{
			Camera: cam, Submitter: sub, Notifier: s.notifier, Tr: s.tr, Nav: s.nav,
		})
	}
}

// close releases camera streams held by open forms.
func (s *Session) close() {
	if s.receipt != nil {
		s.receipt.Close()
		s.receipt = nil
	}
	if s.occurrence != nil {
		s.occurrence.Close()
		s.occurrence = nil
	}
	s.closed = true
}

// cameraTarget is the camera-owning part of the receipt and occurrence forms.
type cameraTarget interface {
	StartCamera(ctx context.Context) error
	CancelCamera()
}

func (s *Session) camera() (cameraTarget, error) {
	switch {
	case s.receipt != nil:
		return s.receipt, nil
	case s.occurrence != nil:
		return s.occurrence, nil
	}
	return nil, errors.Wrap(ErrWrongScreen, "camera is only available on capture screens")
}

func (s *Session) notify(ctx context.Context, kind notify.Kind, titleKey, descKey string) {
	s.notifier.Notify(ctx, notify.Notification{
		Kind:        kind,
		Title:       s.tr.T(titleKey),
		Description: s.tr.T(descKey),
	})
}

func (s *Session) view(list []models.Delivery, driverName string) View {
	tr := s.tr
	summary := deliveries.Summarize(driverName, list)
	v := View{
		DriverID: s.driverID,
		Screen:   s.nav.Screen(),
		Tab:      s.nav.Tab(),
		Language: tr.Language(),
		Accessibility: AccessibilityView{
			Accessibility: s.a11y,
			FontPixels:    s.a11y.FontSize.Pixels(),
			Languages:     i18n.Languages,
		},
		Header: Header{
			Summary:        summary,
			Greeting:       tr.T("greeting"),
			Title:          tr.T("deliveries_today"),
			RemainingLabel: tr.T("remaining_deliveries"),
		},
	}
	for _, t := range tabOrder {
		v.Tabs = append(v.Tabs, TabView{Tab: t.tab, Label: tr.T(t.key), Active: t.tab == v.Tab})
	}

	sel, hasSel := s.nav.Selected()
	switch {
	case v.Screen == navigation.ScreenDetail && hasSel:
		dv := &DetailView{Delivery: card(tr, sel), Links: linksFor(sel)}
		if sel.Priority == models.PriorityHigh {
			dv.HighPriorityAlert = tr.T("high_priority_alert")
		}
		v.Detail = dv
	case v.Screen == navigation.ScreenReceipt && s.receipt != nil:
		v.Receipt = &ReceiptView{
			Delivery:    card(tr, s.receipt.Delivery()),
			CameraState: s.receipt.State(),
			Photo:       s.receipt.Photo(),
		}
	case v.Screen == navigation.ScreenOccurrence && s.occurrence != nil:
		v.Occurrence = &OccurrenceView{
			Delivery:    card(tr, s.occurrence.Delivery()),
			Types:       occurrences.TypeOptions(tr),
			CameraState: s.occurrence.CameraState(),
			Photos:      s.occurrence.Photos(),
			MaxPhotos:   occurrences.MaxPhotos,
			CanAddPhoto: s.occurrence.CanAddPhoto(),
		}
	default:
		v.List = listView(tr, list, s.filter)
	}

	v.Toasts = s.outbox.Drain()
	return v
}

func listView(tr *i18n.Translator, list []models.Delivery, f deliveries.FilterType) *ListView {
	items := deliveries.Filter(list, f)
	lv := &ListView{
		Filter:     f,
		CountLabel: tr.Tf("deliveries_count", len(items)),
		Items:      cards(tr, items),
	}
	for _, p := range deliveries.Filters {
		lv.Filters = append(lv.Filters, FilterPill{Value: p, Label: tr.T(deliveries.FilterLabelKey(p)), Active: p == f})
	}
	if len(items) == 0 {
		lv.Empty = tr.T("no_deliveries_found")
	}
	return lv
}
