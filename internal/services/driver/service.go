package driver

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/BearBump/DriverBox/internal/cache"
	"github.com/BearBump/DriverBox/internal/capture"
	"github.com/BearBump/DriverBox/internal/deliveries"
	"github.com/BearBump/DriverBox/internal/i18n"
	"github.com/BearBump/DriverBox/internal/metrics"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/BearBump/DriverBox/internal/navigation"
	"github.com/BearBump/DriverBox/internal/notify"
	"github.com/BearBump/DriverBox/internal/services/occurrences"
	"github.com/BearBump/DriverBox/internal/services/receipts"
	"github.com/pkg/errors"
)

var (
	ErrUnknownDelivery = errors.New("unknown delivery")
	ErrWrongScreen     = errors.New("action not available on this screen")
	ErrEmptyDriverID   = errors.New("driver id is required")
)

// Submitter delivers both kinds of driver submissions.
type Submitter interface {
	receipts.Submitter
	occurrences.Submitter
}

// SubmitterFactory returns the submitter a driver's forms use.
type SubmitterFactory func(driverID string) Submitter

type Config struct {
	DriverName      string
	DefaultLanguage i18n.Language
	// SessionTTL is how long an idle session stays in memory and in the cache.
	SessionTTL time.Duration
}

// Service owns the driver sessions. Requests of one driver are serialized,
// different drivers proceed concurrently.
type Service struct {
	store      *deliveries.Store
	camera     capture.Camera
	submitters SubmitterFactory
	cache      cache.BytesCache
	cfg        Config
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func New(store *deliveries.Store, cam capture.Camera, submitters SubmitterFactory, c cache.BytesCache, cfg Config) *Service {
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = i18n.DefaultLanguage
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	return &Service{
		store:      store,
		camera:     cam,
		submitters: submitters,
		cache:      c,
		cfg:        cfg,
		now:        time.Now,
		sessions:   make(map[string]*Session),
	}
}

func sessionKey(driverID string) string {
	return "session:" + driverID
}

// acquire returns the locked session of driverID, creating it if needed.
func (s *Service) acquire(ctx context.Context, driverID string) (*Session, error) {
	if driverID == "" {
		return nil, ErrEmptyDriverID
	}
	for {
		s.mu.Lock()
		sess, ok := s.sessions[driverID]
		if !ok {
			sess = newSession(driverID, s.cfg.DefaultLanguage)
			s.sessions[driverID] = sess
			metrics.ActiveSessions.Set(float64(len(s.sessions)))
			// держим lock сессии до restore, чтобы параллельный запрос не увидел пустое состояние
			sess.mu.Lock()
			s.mu.Unlock()
			s.restore(ctx, sess)
			return sess, nil
		}
		s.mu.Unlock()

		sess.mu.Lock()
		if !sess.closed {
			return sess, nil
		}
		// сессию выселили, пока ждали lock
		sess.mu.Unlock()
	}
}

func (s *Service) restore(ctx context.Context, sess *Session) {
	if s.cache == nil {
		return
	}
	b, ok, err := s.cache.Get(ctx, sessionKey(sess.driverID))
	if err != nil {
		slog.Warn("load session snapshot", "driver_id", sess.driverID, "error", err.Error())
		return
	}
	if !ok {
		return
	}
	var sn snapshot
	if err := json.Unmarshal(b, &sn); err != nil {
		slog.Warn("decode session snapshot", "driver_id", sess.driverID, "error", err.Error())
		return
	}
	sess.restore(sn, s.store)
	slog.Info("session restored", "driver_id", sess.driverID, "screen", string(sess.nav.Screen()))
}

func (s *Service) persist(ctx context.Context, sess *Session) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(sess.snapshot())
	if err != nil {
		slog.Warn("encode session snapshot", "driver_id", sess.driverID, "error", err.Error())
		return
	}
	if err := s.cache.Set(ctx, sessionKey(sess.driverID), b, s.cfg.SessionTTL); err != nil {
		slog.Warn("save session snapshot", "driver_id", sess.driverID, "error", err.Error())
	}
}

// do runs fn on the driver's session and renders the resulting view.
// The view is returned even when fn fails, so toasts reach the client.
func (s *Service) do(ctx context.Context, driverID string, fn func(sess *Session) error) (View, error) {
	sess, err := s.acquire(ctx, driverID)
	if err != nil {
		return View{}, err
	}
	defer sess.mu.Unlock()

	sess.lastSeen = s.now()
	sess.syncFlows(s.camera, s.submitter(driverID))

	var fnErr error
	if fn != nil {
		fnErr = fn(sess)
	}

	sess.syncFlows(s.camera, s.submitter(driverID))
	s.persist(ctx, sess)
	return sess.view(s.store.List(), s.cfg.DriverName), fnErr
}

func (s *Service) submitter(driverID string) Submitter {
	if s.submitters == nil {
		return nil
	}
	return s.submitters(driverID)
}

func (s *Service) delivery(id string) (models.Delivery, error) {
	d, ok := s.store.ByID(id)
	if !ok {
		return models.Delivery{}, errors.Wrapf(ErrUnknownDelivery, "%q", id)
	}
	return d, nil
}

// Deliveries is the plain filtered route, independent of any session.
func (s *Service) Deliveries(filter string) ([]models.Delivery, error) {
	f, err := deliveries.ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	return deliveries.Filter(s.store.List(), f), nil
}

func (s *Service) Links(deliveryID string) (Links, error) {
	d, err := s.delivery(deliveryID)
	if err != nil {
		return Links{}, err
	}
	return linksFor(d), nil
}

func (s *Service) View(ctx context.Context, driverID string) (View, error) {
	return s.do(ctx, driverID, nil)
}

func (s *Service) SetFilter(ctx context.Context, driverID, filter string) (View, error) {
	f, err := deliveries.ParseFilter(filter)
	if err != nil {
		return View{}, err
	}
	return s.do(ctx, driverID, func(sess *Session) error {
		sess.filter = f
		return nil
	})
}

func (s *Service) SelectDelivery(ctx context.Context, driverID, deliveryID string) (View, error) {
	d, err := s.delivery(deliveryID)
	if err != nil {
		return View{}, err
	}
	return s.do(ctx, driverID, func(sess *Session) error {
		sess.nav.SelectDelivery(d)
		return nil
	})
}

func (s *Service) GoBack(ctx context.Context, driverID string) (View, error) {
	return s.do(ctx, driverID, func(sess *Session) error {
		sess.nav.GoBack()
		return nil
	})
}

func (s *Service) ChangeTab(ctx context.Context, driverID, tab string) (View, error) {
	t, err := navigation.ParseTab(tab)
	if err != nil {
		return View{}, err
	}
	return s.do(ctx, driverID, func(sess *Session) error {
		if !sess.nav.ChangeTab(t, s.store.List()) {
			sess.notify(ctx, notify.KindInfo, "no_pending_deliveries", "no_pending_deliveries_desc")
		}
		return nil
	})
}

func (s *Service) OpenReceipt(ctx context.Context, driverID string) (View, error) {
	return s.do(ctx, driverID, func(sess *Session) error {
		if !sess.nav.OpenReceipt() {
			return errors.Wrap(ErrWrongScreen, "no delivery selected")
		}
		return nil
	})
}

func (s *Service) OpenOccurrence(ctx context.Context, driverID string) (View, error) {
	return s.do(ctx, driverID, func(sess *Session) error {
		if !sess.nav.OpenOccurrence() {
			return errors.Wrap(ErrWrongScreen, "no delivery selected")
		}
		return nil
	})
}

func (s *Service) StartCamera(ctx context.Context, driverID string) (View, error) {
	return s.do(ctx, driverID, func(sess *Session) error {
		c, err := sess.camera()
		if err != nil {
			return err
		}
		return c.StartCamera(ctx)
	})
}

func (s *Service) CancelCamera(ctx context.Context, driverID string) (View, error) {
	return s.do(ctx, driverID, func(sess *Session) error {
		c, err := sess.camera()
		if err != nil {
			return err
		}
		c.CancelCamera()
		return nil
	})
}

// CapturePhoto snapshots the active camera into the current form.
func (s *Service) CapturePhoto(ctx context.Context, driverID string) (View, error) {
	return s.do(ctx, driverID, func(sess *Session) error {
		switch {
		case sess.receipt != nil:
			_, err := sess.receipt.Capture(ctx)
			return err
		case sess.occurrence != nil:
			_, err := sess.occurrence.CapturePhoto(ctx)
			return err
		}
		return errors.Wrap(ErrWrongScreen, "camera is only available on capture screens")
	})
}

// AttachPhoto adds a gallery photo to the current form.
func (s *Service) AttachPhoto(ctx context.Context, driverID, dataURL string) (View, error) {
	return s.do(ctx, driverID, func(sess *Session) error {
		switch {
		case sess.receipt != nil:
			return sess.receipt.SelectFromGallery(dataURL)
		case sess.occurrence != nil:
			_, err := sess.occurrence.AddPhoto(dataURL)
			return err
		}
		return errors.Wrap(ErrWrongScreen, "photos are only available on capture screens")
	})
}

// RemovePhoto drops the receipt photo, or the occurrence photo at index.
func (s *Service) RemovePhoto(ctx context.Context, driverID string, index int) (View, error) {
	return s.do(ctx, driverID, func(sess *Session) error {
		switch {
		case sess.receipt != nil:
			sess.receipt.RemovePhoto()
			return nil
		case sess.occurrence != nil:
			if !sess.occurrence.RemovePhoto(index) {
				return errors.Wrapf(ErrWrongScreen, "no photo at index %d", index)
			}
			return nil
		}
		return errors.Wrap(ErrWrongScreen, "photos are only available on capture screens")
	})
}

func (s *Service) SubmitReceipt(ctx context.Context, driverID string, form receipts.Form) (View, error) {
	return s.do(ctx, driverID, func(sess *Session) error {
		if sess.receipt == nil {
			return errors.Wrap(ErrWrongScreen, "receipt form is not open")
		}
		_, err := sess.receipt.Submit(ctx, form)
		return err
	})
}

func (s *Service) SubmitOccurrence(ctx context.Context, driverID string, form occurrences.Form) (View, error) {
	return s.do(ctx, driverID, func(sess *Session) error {
		if sess.occurrence == nil {
			return errors.Wrap(ErrWrongScreen, "occurrence form is not open")
		}
		_, err := sess.occurrence.Submit(ctx, form)
		return err
	})
}

func (s *Service) SetLanguage(ctx context.Context, driverID, lang string) (View, error) {
	l, err := i18n.ParseLanguage(lang)
	if err != nil {
		return View{}, err
	}
	return s.do(ctx, driverID, func(sess *Session) error {
		sess.tr.SetLanguage(l)
		return nil
	})
}

// SetAccessibility updates the preferences that are set; nil leaves a field as is.
func (s *Service) SetAccessibility(ctx context.Context, driverID string, fontSize *string, highContrast *bool) (View, error) {
	var fs FontSize
	if fontSize != nil {
		var err error
		if fs, err = ParseFontSize(*fontSize); err != nil {
			return View{}, err
		}
	}
	return s.do(ctx, driverID, func(sess *Session) error {
		if fontSize != nil {
			sess.a11y.FontSize = fs
		}
		if highContrast != nil {
			sess.a11y.HighContrast = *highContrast
		}
		return nil
	})
}

// EndSession releases the session and forgets its snapshot.
func (s *Service) EndSession(ctx context.Context, driverID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[driverID]
	delete(s.sessions, driverID)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	if ok {
		sess.mu.Lock()
		sess.close()
		sess.mu.Unlock()
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, sessionKey(driverID)); err != nil {
			return errors.Wrap(err, "delete session snapshot")
		}
	}
	return nil
}

// EvictIdle drops sessions not seen for SessionTTL. Their snapshots stay in the cache.
func (s *Service) EvictIdle() int {
	deadline := s.now().Add(-s.cfg.SessionTTL)

	s.mu.Lock()
	var idle []*Session
	for id, sess := range s.sessions {
		// TryLock: занятая сессия точно не простаивает
		if !sess.mu.TryLock() {
			continue
		}
		if sess.lastSeen.Before(deadline) {
			sess.close()
			idle = append(idle, sess)
			delete(s.sessions, id)
		}
		sess.mu.Unlock()
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	for _, sess := range idle {
		slog.Info("session evicted", "driver_id", sess.driverID)
	}
	return len(idle)
}

// RunJanitor evicts idle sessions every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.EvictIdle()
		}
	}
}

// Close releases every session, e.g. on shutdown.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		sess.close()
		sess.mu.Unlock()
		delete(s.sessions, id)
	}
	metrics.ActiveSessions.Set(0)
}
