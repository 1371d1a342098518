package occurrences

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

// MaxPhotos is the number of photos the form offers slots for.
const MaxPhotos = 4

var ErrSubmitFailed = errors.New("occurrence submission failed")

var errNoSubmitter = errors.New("no submitter configured")

type Submitter interface {
	SubmitOccurrence(ctx context.Context, o models.Occurrence) (models.SubmitResult, error)
}

type Completer interface {
	Complete()
}

type Form struct {
	Type        string
	Description string
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

// TypeOption is one entry of the type picker.
type TypeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var typeKeys = map[string]struct{ key, icon string }{
	models.OccurrenceTypeDamage:     {"damaged_product", "💔"},
	models.OccurrenceTypeRefused:    {"refused_receipt", "🚫"},
	models.OccurrenceTypePartial:    {"partial_delivery", "📦"},
	models.OccurrenceTypeReschedule: {"reschedule", "📅"},
	models.OccurrenceTypeOther:      {"other", "📝"},
}

func TypeOptions(tr *i18n.Translator) []TypeOption {
	out := make([]TypeOption, 0, len(models.OccurrenceTypes))
	for _, t := range models.OccurrenceTypes {
		k := typeKeys[t]
		out = append(out, TypeOption{Value: t, Label: tr.T(k.key), Icon: k.icon})
	}
	return out
}

// Flow is the occurrence report screen of one delivery.
type Flow struct {
	delivery models.Delivery
	cam      *capture.Session
	photos   []string
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
func (f *Flow) CameraState() capture.State { return f.cam.State() }

func (f *Flow) Photos() []string {
	out := make([]string, len(f.photos))
	copy(out, f.photos)
	return out
}

func (f *Flow) CanAddPhoto() bool { return len(f.photos) < MaxPhotos }

// AddPhoto attaches a gallery photo. Past MaxPhotos it is ignored and false is returned.
func (f *Flow) AddPhoto(dataURL string) (bool, error) {
	if _, err := capture.ParseDataURL(dataURL); err != nil {
		return false, err
	}
	if !f.CanAddPhoto() {
		return false, nil
	}
	f.photos = append(f.photos, dataURL)
	// галерея вместо камеры: поток больше не нужен
	f.cam.Cancel()
	return true, nil
}

func (f *Flow) StartCamera(ctx context.Context) error {
	err := f.cam.StartCamera(ctx)
	if errors.Is(err, capture.ErrPermissionDenied) {
		metrics.CameraPermissionDeniedTotal.Inc()
		f.toast(ctx, notify.KindError, "camera_denied", "camera_denied_desc")
	}
	return err
}

// CapturePhoto takes a frame from the active camera and attaches it.
// The stream is released either way.
func (f *Flow) CapturePhoto(ctx context.Context) (bool, error) {
	if !f.CanAddPhoto() {
		f.cam.Cancel()
		return false, nil
	}
	photo, err := f.cam.Capture(ctx)
	if err != nil {
		return false, err
	}
	f.cam.RemovePhoto()
	f.photos = append(f.photos, photo)
	return true, nil
}

func (f *Flow) CancelCamera() { f.cam.Cancel() }

func (f *Flow) RemovePhoto(i int) bool {
	if i < 0 || i >= len(f.photos) {
		return false
	}
	f.photos = append(f.photos[:i], f.photos[i+1:]...)
	return true
}

func (f *Flow) Close() { f.cam.Close() }

func (f *Flow) Submit(ctx context.Context, form Form) (models.Occurrence, error) {
	if !models.IsOccurrenceType(form.Type) {
		return models.Occurrence{}, f.reject(ctx, &models.ValidationError{
			Field: "type", TitleKey: "type_required", DescriptionKey: "type_required_desc",
		})
	}
	desc := strings.TrimSpace(form.Description)
	if desc == "" {
		return models.Occurrence{}, f.reject(ctx, &models.ValidationError{
			Field: "description", TitleKey: "description_required", DescriptionKey: "description_required_desc",
		})
	}

	o := models.Occurrence{
		ID:          f.deps.NewID(),
		DeliveryID:  f.delivery.ID,
		Type:        form.Type,
		Description: desc,
		Photos:      f.Photos(),
		CreatedAt:   f.deps.Now(),
	}

	var (
		res models.SubmitResult
		err = errNoSubmitter
	)
	if f.deps.Submitter != nil {
		res, err = f.deps.Submitter.SubmitOccurrence(ctx, o)
	}
	if err == nil && !res.OK {
		err = errors.Errorf("rejected: %s", res.Reason)
	}
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("occurrence", "failed").Inc()
		slog.Error("submit occurrence", "delivery_id", f.delivery.ID, "error", err.Error())
		f.toast(ctx, notify.KindError, "submit_failed", "submit_failed_desc")
		return models.Occurrence{}, errors.Wrap(ErrSubmitFailed, err.Error())
	}

	metrics.SubmissionsTotal.WithLabelValues("occurrence", "ok").Inc()
	slog.Info("occurrence submitted", "delivery_id", f.delivery.ID, "occurrence_id", o.ID, "type", o.Type)
	f.deps.Notifier.Notify(ctx, notify.Notification{
		Kind:        notify.KindSuccess,
		Title:       f.deps.Tr.T("occurrence_saved"),
		Description: f.deps.Tr.T("occurrence_saved_desc"),
	})
	f.cam.Close()
	if f.deps.Nav != nil {
		f.deps.Nav.Complete()
	}
	return o, nil
}

func (f *Flow) reject(ctx context.Context, verr *models.ValidationError) error {
	metrics.ValidationRejectedTotal.WithLabelValues("occurrence", verr.Field).Inc()
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
