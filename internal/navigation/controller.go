package navigation

import (
	"github.com/BearBump/DriverBox/internal/deliveries"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/pkg/errors"
)

type Screen string

const (
	ScreenList       Screen = "list"
	ScreenDetail     Screen = "detail"
	ScreenReceipt    Screen = "receipt"
	ScreenOccurrence Screen = "occurrence"
)

type Tab string

const (
	TabDeliveries  Tab = "deliveries"
	TabReceipt     Tab = "receipt"
	TabOccurrences Tab = "occurrences"
	TabProfile     Tab = "profile"
)

var ErrUnknownTab = errors.New("unknown tab")

func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabDeliveries, TabReceipt, TabOccurrences, TabProfile:
		return Tab(s), nil
	}
	return "", errors.Wrapf(ErrUnknownTab, "%q", s)
}

// State is the serializable part of the controller.
type State struct {
	Screen   Screen           `json:"screen"`
	Tab      Tab              `json:"tab"`
	Selected *models.Delivery `json:"selected,omitempty"`
}

// Controller decides which screen is shown. Every method is a total,
// synchronous function of the current state and the event.
type Controller struct {
	st State
}

func New() *Controller {
	return &Controller{st: State{Screen: ScreenList, Tab: TabDeliveries}}
}

func isScreen(s Screen) bool {
	switch s {
	case ScreenList, ScreenDetail, ScreenReceipt, ScreenOccurrence:
		return true
	}
	return false
}

// Restore rebuilds a controller from a saved state. Unknown screen or tab
// values fall back to the initial ones.
func Restore(st State) *Controller {
	c := New()
	if isScreen(st.Screen) {
		c.st.Screen = st.Screen
	}
	if _, err := ParseTab(string(st.Tab)); err == nil {
		c.st.Tab = st.Tab
	}
	if st.Selected != nil {
		d := *st.Selected
		c.st.Selected = &d
	}
	// Без выбранной доставки остаётся только список.
	if c.st.Selected == nil {
		c.st.Screen = ScreenList
	}
	return c
}

func (c *Controller) State() State {
	st := c.st
	if st.Selected != nil {
		d := *st.Selected
		st.Selected = &d
	}
	return st
}

func (c *Controller) Screen() Screen { return c.st.Screen }
func (c *Controller) Tab() Tab       { return c.st.Tab }

func (c *Controller) Selected() (models.Delivery, bool) {
	if c.st.Selected == nil {
		return models.Delivery{}, false
	}
	return *c.st.Selected, true
}

func (c *Controller) SelectDelivery(d models.Delivery) {
	c.st.Selected = &d
	c.st.Screen = ScreenDetail
}

func (c *Controller) GoBack() {
	switch c.st.Screen {
	case ScreenReceipt, ScreenOccurrence:
		c.st.Screen = ScreenDetail
	default:
		c.toList()
	}
}

// Complete is signalled after a successful receipt or occurrence submission.
func (c *Controller) Complete() {
	c.toList()
}

// OpenReceipt is the detail screen's "register receipt" action.
func (c *Controller) OpenReceipt() bool {
	if c.st.Selected == nil {
		return false
	}
	c.st.Screen = ScreenReceipt
	return true
}

// OpenOccurrence is the detail screen's "register occurrence" action.
func (c *Controller) OpenOccurrence() bool {
	if c.st.Selected == nil {
		return false
	}
	c.st.Screen = ScreenOccurrence
	return true
}

// ChangeTab switches the bottom-nav tab. Receipt and occurrences tabs jump
// straight to the form for the first undelivered delivery. It returns false
// when such a shortcut found nothing to select; the screen is then unchanged.
func (c *Controller) ChangeTab(tab Tab, list []models.Delivery) bool {
	c.st.Tab = tab
	switch tab {
	case TabReceipt, TabOccurrences:
		d, ok := deliveries.FirstUndelivered(list)
		if !ok {
			return false
		}
		c.st.Selected = &d
		if tab == TabReceipt {
			c.st.Screen = ScreenReceipt
		} else {
			c.st.Screen = ScreenOccurrence
		}
	case TabDeliveries:
		c.toList()
	}
	return true
}

func (c *Controller) toList() {
	c.st.Screen = ScreenList
	c.st.Selected = nil
}
