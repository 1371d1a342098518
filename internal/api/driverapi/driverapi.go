package driverapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/BearBump/DriverBox/internal/i18n"
	"github.com/BearBump/DriverBox/internal/metrics"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/BearBump/DriverBox/internal/services/driver"
	"github.com/BearBump/DriverBox/internal/services/occurrences"
	"github.com/BearBump/DriverBox/internal/services/receipts"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const maxBodyBytes = 16 << 20

// Service is the driver session service as the API sees it.
type Service interface {
	Deliveries(filter string) ([]models.Delivery, error)
	Links(deliveryID string) (driver.Links, error)

	View(ctx context.Context, driverID string) (driver.View, error)
	SetFilter(ctx context.Context, driverID, filter string) (driver.View, error)
	SelectDelivery(ctx context.Context, driverID, deliveryID string) (driver.View, error)
	GoBack(ctx context.Context, driverID string) (driver.View, error)
	ChangeTab(ctx context.Context, driverID, tab string) (driver.View, error)
	OpenReceipt(ctx context.Context, driverID string) (driver.View, error)
	OpenOccurrence(ctx context.Context, driverID string) (driver.View, error)
	StartCamera(ctx context.Context, driverID string) (driver.View, error)
	CancelCamera(ctx context.Context, driverID string) (driver.View, error)
	CapturePhoto(ctx context.Context, driverID string) (driver.View, error)
	AttachPhoto(ctx context.Context, driverID, dataURL string) (driver.View, error)
	RemovePhoto(ctx context.Context, driverID string, index int) (driver.View, error)
	SubmitReceipt(ctx context.Context, driverID string, form receipts.Form) (driver.View, error)
	SubmitOccurrence(ctx context.Context, driverID string, form occurrences.Form) (driver.View, error)
	SetLanguage(ctx context.Context, driverID, lang string) (driver.View, error)
	SetAccessibility(ctx context.Context, driverID string, fontSize *string, highContrast *bool) (driver.View, error)
	EndSession(ctx context.Context, driverID string) error
}

type Options struct {
	// SwaggerPath enables /swagger.json and /docs when set.
	SwaggerPath string
	// Metrics is served on /metrics when set.
	Metrics http.Handler
}

type API struct {
	svc Service
}

func New(svc Service) *API {
	return &API{svc: svc}
}

func (a *API) Handler(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Instrument(routePattern))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}
	if opts.SwaggerPath != "" {
		r.Get("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			http.ServeFile(w, r, opts.SwaggerPath)
		})
		swaggerURL := "/swagger.json"
		if fi, err := os.Stat(opts.SwaggerPath); err == nil {
			swaggerURL = fmt.Sprintf("/swagger.json?v=%d", fi.ModTime().Unix())
		}
		r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/deliveries", a.listDeliveries)
		r.Get("/deliveries/{deliveryID}/links", a.deliveryLinks)
		r.Get("/languages", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, i18n.Languages)
		})

		r.Route("/sessions/{driverID}", func(r chi.Router) {
			r.Get("/", a.viewOnly((Service).View))
			r.Delete("/", a.endSession)
			r.Post("/back", a.viewOnly((Service).GoBack))

			r.Put("/filter", a.setFilter)
			r.Post("/select", a.selectDelivery)
			r.Put("/tab", a.changeTab)
			r.Put("/language", a.setLanguage)
			r.Put("/accessibility", a.setAccessibility)

			r.Post("/receipt", a.viewOnly((Service).OpenReceipt))
			r.Post("/receipt/submit", a.submitReceipt)
			r.Post("/occurrence", a.viewOnly((Service).OpenOccurrence))
			r.Post("/occurrence/submit", a.submitOccurrence)

			r.Post("/camera/start", a.viewOnly((Service).StartCamera))
			r.Post("/camera/capture", a.viewOnly((Service).CapturePhoto))
			r.Post("/camera/cancel", a.viewOnly((Service).CancelCamera))

			r.Post("/photos", a.attachPhoto)
			r.Delete("/photos/{index}", a.removePhoto)
		})
	})

	return r
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(errBadRequest, err.Error())
	}
	return validateStruct(dst)
}

func respond(w http.ResponseWriter, r *http.Request, v driver.View, err error) {
	if err != nil {
		writeError(w, r, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (a *API) viewOnly(fn func(Service, context.Context, string) (driver.View, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fn(a.svc, r.Context(), chi.URLParam(r, "driverID"))
		respond(w, r, v, err)
	}
}

func (a *API) listDeliveries(w http.ResponseWriter, r *http.Request) {
	list, err := a.svc.Deliveries(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list, "count": len(list)})
}

func (a *API) deliveryLinks(w http.ResponseWriter, r *http.Request) {
	l, err := a.svc.Links(chi.URLParam(r, "deliveryID"))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (a *API) endSession(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.EndSession(r.Context(), chi.URLParam(r, "driverID")); err != nil {
		writeError(w, r, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) setFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	v, err := a.svc.SetFilter(r.Context(), chi.URLParam(r, "driverID"), req.Filter)
	respond(w, r, v, err)
}

func (a *API) selectDelivery(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	v, err := a.svc.SelectDelivery(r.Context(), chi.URLParam(r, "driverID"), req.DeliveryID)
	respond(w, r, v, err)
}

func (a *API) changeTab(w http.ResponseWriter, r *http.Request) {
	var req tabRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	v, err := a.svc.ChangeTab(r.Context(), chi.URLParam(r, "driverID"), req.Tab)
	respond(w, r, v, err)
}

func (a *API) setLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	v, err := a.svc.SetLanguage(r.Context(), chi.URLParam(r, "driverID"), req.Language)
	respond(w, r, v, err)
}

func (a *API) setAccessibility(w http.ResponseWriter, r *http.Request) {
	var req accessibilityRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	v, err := a.svc.SetAccessibility(r.Context(), chi.URLParam(r, "driverID"), req.FontSize, req.HighContrast)
	respond(w, r, v, err)
}

func (a *API) attachPhoto(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	v, err := a.svc.AttachPhoto(r.Context(), chi.URLParam(r, "driverID"), req.Photo)
	respond(w, r, v, err)
}

func (a *API) removePhoto(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || idx < 0 {
		writeError(w, r, errors.Wrap(errBadRequest, "photo index must be a non-negative integer"), nil)
		return
	}
	v, err := a.svc.RemovePhoto(r.Context(), chi.URLParam(r, "driverID"), idx)
	respond(w, r, v, err)
}

func (a *API) submitReceipt(w http.ResponseWriter, r *http.Request) {
	var req receiptRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	v, err := a.svc.SubmitReceipt(r.Context(), chi.URLParam(r, "driverID"), receipts.Form{
		ReceiverName: req.ReceiverName,
		ReceiverDoc:  req.ReceiverDoc,
		Signature:    req.Signature,
		Notes:        req.Notes,
	})
	respond(w, r, v, err)
}

func (a *API) submitOccurrence(w http.ResponseWriter, r *http.Request) {
	var req occurrenceRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}
	v, err := a.svc.SubmitOccurrence(r.Context(), chi.URLParam(r, "driverID"), occurrences.Form{
		Type:        req.Type,
		Description: req.Description,
	})
	respond(w, r, v, err)
}
