package driverapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/BearBump/DriverBox/internal/capture"
	"github.com/BearBump/DriverBox/internal/deliveries"
	"github.com/BearBump/DriverBox/internal/i18n"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/BearBump/DriverBox/internal/navigation"
	"github.com/BearBump/DriverBox/internal/services/driver"
	"github.com/BearBump/DriverBox/internal/services/occurrences"
	"github.com/BearBump/DriverBox/internal/services/receipts"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error  string       `json:"error"`
	Field  string       `json:"field,omitempty"`
	Fields []string     `json:"fields,omitempty"`
	View   *driver.View `json:"view,omitempty"`
}

func statusOf(err error) int {
	var verr *models.ValidationError
	var vErrs validator.ValidationErrors
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, capture.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, driver.ErrUnknownDelivery):
		return http.StatusNotFound
	case errors.Is(err, receipts.ErrSubmitFailed), errors.Is(err, occurrences.ErrSubmitFailed):
		return http.StatusBadGateway
	case errors.Is(err, driver.ErrWrongScreen), errors.Is(err, capture.ErrCameraNotActive):
		return http.StatusConflict
	case errors.Is(err, capture.ErrNoCamera):
		return http.StatusServiceUnavailable
	case errors.As(err, &vErrs),
		errors.Is(err, errBadRequest),
		errors.Is(err, driver.ErrEmptyDriverID),
		errors.Is(err, driver.ErrUnknownFontSize),
		errors.Is(err, deliveries.ErrUnknownFilter),
		errors.Is(err, navigation.ErrUnknownTab),
		errors.Is(err, i18n.ErrUnknownLanguage),
		errors.Is(err, capture.ErrInvalidPhoto):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err. The view, when present, still carries the toasts
// the failed action raised.
func writeError(w http.ResponseWriter, r *http.Request, err error, view *driver.View) {
	status := statusOf(err)
	resp := errorResponse{Error: err.Error()}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, fe := range vErrs {
			resp.Fields = append(resp.Fields, fe.Field())
		}
	}
	if view != nil && view.DriverID != "" {
		resp.View = view
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err.Error())
	}
	writeJSON(w, status, resp)
}
