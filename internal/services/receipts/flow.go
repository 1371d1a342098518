package receipts

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/BearBump/DriverBox/internal/capture"
	"github.com/BearBump/DriverBox/internal/i18n"
	"github.com/BearBump/DriverBox/internal/metrics"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/BearBump/DriverBox/internal/notify"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrSubmitFailed = errors.New("receipt submission failed")

var errNoSubmitter = errors.New("no submitter configured")

type Submitter interface {
	SubmitReceipt(ctx context.Context, r models.Receipt) (models.SubmitResult, error)
}

// Completer is told when the flow is done (navigation goes back to the list).
type Completer interface {
	Complete()
}

type Form struct {
	ReceiverName string
	ReceiverDoc  string
	Signature    string
	Notes        string
}

type Deps struct {
	Camera    capture.Camera
	Submitter Submitter
	Notifier  notify.Notifier
	Tr        *i18n.Translator
	Nav       Completer

	Now   func() time.Time
	NewID func() string
}

// Flow is the receipt capture screen of one delivery.
type Flow struct {
	delivery models.Delivery
	cam      *capture.Session
	deps     Deps
}

func New(d models.Delivery, deps Deps) *Flow {
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	if deps.NewID == nil {
		deps.NewID = func() string { return uuid.NewString() }
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.Multi{}
	}
	return &Flow{delivery: d, cam: capture.NewSession(deps.Camera), deps: deps}
}

func (f *Flow) Delivery() models.Delivery { return f.delivery }
func (f *Flow) State() capture.State      { return f.cam.State() }
func (f *Flow) Photo() string             { return f.cam.Photo() }

// StartCamera asks for the camera. A refusal is shown to the driver and
// leaves the flow idle; retrying or picking from the gallery still works.
func (f *Flow) StartCamera(ctx context.Context) error {
	err := f.cam.StartCamera(ctx)
	if errors.Is(err, capture.ErrPermissionDenied) {
		metrics.CameraPermissionDeniedTotal.Inc()
		f.toast(ctx, notify.KindError, "camera_denied", "camera_denied_desc")
	}
	return err
}

func (f *Flow) Capture(ctx context.Context) (string, error) {
	return f.cam.Capture(ctx)
}

func (f *Flow) CancelCamera() { f.cam.Cancel() }

func (f *Flow) SelectFromGallery(photo string) error {
	return f.cam.SelectFromGallery(photo)
}

func (f *Flow) RemovePhoto() { f.cam.RemovePhoto() }

// Close releases the camera; called when the screen goes away.
func (f *Flow) Close() { f.cam.Close() }

// Submit validates the form and hands the receipt to the submitter.
// On validation or submit failure nothing changes besides the toast.
func (f *Flow) Submit(ctx context.Context, form Form) (models.Receipt, error) {
	photo := f.cam.Photo()
	if photo == "" {
		return models.Receipt{}, f.reject(ctx, &models.ValidationError{
			Field: "photo", TitleKey: "photo_required", DescriptionKey: "photo_required_desc",
		})
	}
	name := strings.TrimSpace(form.ReceiverName)
	if name == "" {
		return models.Receipt{}, f.reject(ctx, &models.ValidationError{
			Field: "receiverName", TitleKey: "name_required", DescriptionKey: "name_required_desc",
		})
	}

	r := models.Receipt{
		ID:           f.deps.NewID(),
		DeliveryID:   f.delivery.ID,
		Photo:        photo,
		ReceiverName: name,
		Signature:    optional(form.Signature),
		ReceiverDoc:  optional(form.ReceiverDoc),
		Notes:        optional(form.Notes),
		CreatedAt:    f.deps.Now(),
	}

	var (
		res models.SubmitResult
		err = errNoSubmitter
	)
	if f.deps.Submitter != nil {
		res, err = f.deps.Submitter.SubmitReceipt(ctx, r)
	}
	if err == nil && !res.OK {
		err = errors.Errorf("rejected: %s", res.Reason)
	}
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("receipt", "failed").Inc()
		slog.Error("submit receipt", "delivery_id", f.delivery.ID, "error", err.Error())
		f.toast(ctx, notify.KindError, "submit_failed", "submit_failed_desc")
		return models.Receipt{}, errors.Wrap(ErrSubmitFailed, err.Error())
	}

	metrics.SubmissionsTotal.WithLabelValues("receipt", "ok").Inc()
	slog.Info("receipt submitted", "delivery_id", f.delivery.ID, "receipt_id", r.ID, "reference", res.Reference)
	f.deps.Notifier.Notify(ctx, notify.Notification{
		Kind:        notify.KindSuccess,
		Title:       f.deps.Tr.T("receipt_saved"),
		Description: f.deps.Tr.Tf("receipt_saved_desc", f.delivery.Invoice),
	})
	f.cam.Close()
	if f.deps.Nav != nil {
		f.deps.Nav.Complete()
	}
	return r, nil
}

func (f *Flow) reject(ctx context.Context, verr *models.ValidationError) error {
	metrics.ValidationRejectedTotal.WithLabelValues("receipt", verr.Field).Inc()
	f.toast(ctx, notify.KindError, verr.TitleKey, verr.DescriptionKey)
	return verr
}

func (f *Flow) toast(ctx context.Context, kind notify.Kind, titleKey, descKey string) {
	f.deps.Notifier.Notify(ctx, notify.Notification{
		Kind:        kind,
		Title:       f.deps.Tr.T(titleKey),
		Description: f.deps.Tr.T(descKey),
	})
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
