package driverapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/BearBump/DriverBox/internal/capture"
	"github.com/BearBump/DriverBox/internal/deliveries"
	"github.com/BearBump/DriverBox/internal/integrations/camera/fake"
	"github.com/BearBump/DriverBox/internal/metrics"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/BearBump/DriverBox/internal/navigation"
	"github.com/BearBump/DriverBox/internal/notify"
	"github.com/BearBump/DriverBox/internal/services/driver"
)

type stubSubmitter struct {
	err error
}

func (s stubSubmitter) SubmitReceipt(_ context.Context, r models.Receipt) (models.SubmitResult, error) {
	if s.err != nil {
		return models.SubmitResult{}, s.err
	}
	return models.SubmitResult{OK: true, Reference: r.ID}, nil
}

func (s stubSubmitter) SubmitOccurrence(_ context.Context, o models.Occurrence) (models.SubmitResult, error) {
	if s.err != nil {
		return models.SubmitResult{}, s.err
	}
	return models.SubmitResult{OK: true, Reference: o.ID}, nil
}

var photo = capture.Frame{ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}.DataURL()

type APISuite struct {
	suite.Suite

	cam    *fake.Camera
	subErr error
	srv    *httptest.Server
}

func (s *APISuite) SetupTest() {
	s.cam = fake.New("api")
	s.subErr = nil
	svc := driver.New(deliveries.NewDefault(), s.cam, func(string) driver.Submitter {
		return stubSubmitter{err: s.subErr}
	}, nil, driver.Config{DriverName: "Carlos"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.HTTPRequestDuration)
	s.srv = httptest.NewServer(New(svc).Handler(Options{
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}))
}

func (s *APISuite) TearDownTest() {
	s.srv.Close()
}

func (s *APISuite) do(method, path string, body any) (int, []byte) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, rd)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, b
}

func (s *APISuite) view(method, path string, body any, wantStatus int) driver.View {
	code, b := s.do(method, path, body)
	s.Require().Equal(wantStatus, code, string(b))
	var v driver.View
	s.Require().NoError(json.Unmarshal(b, &v))
	return v
}

func (s *APISuite) errResp(method, path string, body any, wantStatus int) errorResponse {
	code, b := s.do(method, path, body)
	s.Require().Equal(wantStatus, code, string(b))
	var e errorResponse
	s.Require().NoError(json.Unmarshal(b, &e))
	return e
}

func (s *APISuite) TestHealthzAndMetrics() {
	code, b := s.do(http.MethodGet, "/healthz", nil)
	s.Require().Equal(http.StatusOK, code)
	s.Require().JSONEq(`{"status":"ok"}`, string(b))

	code, b = s.do(http.MethodGet, "/metrics", nil)
	s.Require().Equal(http.StatusOK, code)
	s.Require().Contains(string(b), "driverbox_http_request_duration_seconds")
	s.Require().Contains(string(b), `route="/healthz"`)
}

func (s *APISuite) TestDeliveries() {
	code, b := s.do(http.MethodGet, "/v1/deliveries?filter=pending", nil)
	s.Require().Equal(http.StatusOK, code)
	var out struct {
		Items []models.Delivery `json:"items"`
		Count int               `json:"count"`
	}
	s.Require().NoError(json.Unmarshal(b, &out))
	s.Require().Equal(3, out.Count)
	s.Require().Equal("1", out.Items[0].ID)

	s.errResp(http.MethodGet, "/v1/deliveries?filter=bogus", nil, http.StatusBadRequest)

	code, b = s.do(http.MethodGet, "/v1/deliveries/5/links", nil)
	s.Require().Equal(http.StatusOK, code)
	var l driver.Links
	s.Require().NoError(json.Unmarshal(b, &l))
	s.Require().Contains(l.Maps, "Goi%C3%A2nia")
	s.Require().Equal("tel:62999990005", *l.Dial)

	s.errResp(http.MethodGet, "/v1/deliveries/77/links", nil, http.StatusNotFound)
}

func (s *APISuite) TestNavigation() {
	v := s.view(http.MethodGet, "/v1/sessions/drv-1", nil, http.StatusOK)
	s.Require().Equal(navigation.ScreenList, v.Screen)
	s.Require().Len(v.List.Items, 6)

	v = s.view(http.MethodPost, "/v1/sessions/drv-1/select", selectRequest{DeliveryID: "4"}, http.StatusOK)
	s.Require().Equal(navigation.ScreenDetail, v.Screen)
	s.Require().Equal("NF-100004", v.Detail.Delivery.Invoice)

	v = s.view(http.MethodPost, "/v1/sessions/drv-1/occurrence", nil, http.StatusOK)
	s.Require().Equal(navigation.ScreenOccurrence, v.Screen)

	v = s.view(http.MethodPost, "/v1/sessions/drv-1/back", nil, http.StatusOK)
	s.Require().Equal(navigation.ScreenDetail, v.Screen)
	v = s.view(http.MethodPost, "/v1/sessions/drv-1/back", nil, http.StatusOK)
	s.Require().Equal(navigation.ScreenList, v.Screen)

	e := s.errResp(http.MethodPost, "/v1/sessions/drv-1/select", selectRequest{DeliveryID: "404"}, http.StatusNotFound)
	s.Require().Contains(e.Error, "unknown delivery")

	e = s.errResp(http.MethodPost, "/v1/sessions/drv-1/select", map[string]string{}, http.StatusBadRequest)
	s.Require().Equal([]string{"DeliveryID"}, e.Fields)

	s.errResp(http.MethodPost, "/v1/sessions/drv-1/receipt", nil, http.StatusConflict)
	s.errResp(http.MethodPut, "/v1/sessions/drv-1/tab", tabRequest{Tab: "settings"}, http.StatusBadRequest)

	v = s.view(http.MethodPut, "/v1/sessions/drv-1/filter", filterRequest{Filter: "delivered"}, http.StatusOK)
	s.Require().Len(v.List.Items, 1)
}

func (s *APISuite) TestReceiptSubmit() {
	v := s.view(http.MethodPut, "/v1/sessions/drv-1/tab", tabRequest{Tab: "receipt"}, http.StatusOK)
	s.Require().Equal(navigation.ScreenReceipt, v.Screen)
	s.Require().Equal("1", v.Receipt.Delivery.ID)

	e := s.errResp(http.MethodPost, "/v1/sessions/drv-1/receipt/submit", receiptRequest{ReceiverName: "Ana"}, http.StatusUnprocessableEntity)
	s.Require().Equal("photo", e.Field)
	s.Require().NotNil(e.View)
	s.Require().Len(e.View.Toasts, 1)
	s.Require().Equal(notify.KindError, e.View.Toasts[0].Kind)

	s.view(http.MethodPost, "/v1/sessions/drv-1/camera/start", nil, http.StatusOK)
	v = s.view(http.MethodPost, "/v1/sessions/drv-1/camera/capture", nil, http.StatusOK)
	s.Require().Equal(capture.StatePhotoCaptured, v.Receipt.CameraState)
	s.Require().Zero(s.cam.OpenStreams())

	e = s.errResp(http.MethodPost, "/v1/sessions/drv-1/receipt/submit", receiptRequest{ReceiverName: "  "}, http.StatusUnprocessableEntity)
	s.Require().Equal("receiverName", e.Field)

	v = s.view(http.MethodPost, "/v1/sessions/drv-1/receipt/submit", receiptRequest{ReceiverName: "Ana", Notes: "portaria"}, http.StatusOK)
	s.Require().Equal(navigation.ScreenList, v.Screen)
	s.Require().Equal(notify.KindSuccess, v.Toasts[0].Kind)
}

func (s *APISuite) TestSubmitFailureIsBadGateway() {
	s.subErr = errors.New("kafka unavailable")
	s.view(http.MethodPut, "/v1/sessions/drv-1/tab", tabRequest{Tab: "occurrences"}, http.StatusOK)

	e := s.errResp(http.MethodPost, "/v1/sessions/drv-1/occurrence/submit",
		occurrenceRequest{Type: models.OccurrenceTypeDamage, Description: "quebrado"}, http.StatusBadGateway)
	s.Require().NotNil(e.View)
	s.Require().Equal(navigation.ScreenOccurrence, e.View.Screen)
	s.Require().Equal(notify.KindError, e.View.Toasts[0].Kind)
}

func (s *APISuite) TestOccurrencePhotos() {
	s.view(http.MethodPut, "/v1/sessions/drv-1/tab", tabRequest{Tab: "occurrences"}, http.StatusOK)

	var v driver.View
	for i := 0; i < 5; i++ {
		v = s.view(http.MethodPost, "/v1/sessions/drv-1/photos", photoRequest{Photo: photo}, http.StatusOK)
	}
	s.Require().Len(v.Occurrence.Photos, 4)

	v = s.view(http.MethodDelete, "/v1/sessions/drv-1/photos/0", nil, http.StatusOK)
	s.Require().Len(v.Occurrence.Photos, 3)

	s.errResp(http.MethodDelete, "/v1/sessions/drv-1/photos/x", nil, http.StatusBadRequest)
	s.errResp(http.MethodPost, "/v1/sessions/drv-1/photos", photoRequest{Photo: "https://x/y.png"}, http.StatusBadRequest)

	e := s.errResp(http.MethodPost, "/v1/sessions/drv-1/occurrence/submit", occurrenceRequest{Description: "x"}, http.StatusUnprocessableEntity)
	s.Require().Equal("type", e.Field)
}

func (s *APISuite) TestPhotoSizeLimit() {
	s.view(http.MethodPut, "/v1/sessions/drv-1/tab", tabRequest{Tab: "receipt"}, http.StatusOK)

	// обычное фото с телефона, больше 1 МБ
	big := capture.Frame{ContentType: "image/jpeg", Data: make([]byte, 2<<20)}.DataURL()
	v := s.view(http.MethodPost, "/v1/sessions/drv-1/photos", photoRequest{Photo: big}, http.StatusOK)
	s.Require().Equal(capture.StatePhotoCaptured, v.Receipt.CameraState)

	tooBig := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(make([]byte, capture.MaxPhotoBytes+1))
	e := s.errResp(http.MethodPost, "/v1/sessions/drv-1/photos", photoRequest{Photo: tooBig}, http.StatusBadRequest)
	s.Require().Equal([]string{"Photo"}, e.Fields)
}

func (s *APISuite) TestLanguageAccessibilityAndEnd() {
	v := s.view(http.MethodPut, "/v1/sessions/drv-1/language", languageRequest{Language: "en"}, http.StatusOK)
	s.Require().Equal("Pending", v.List.Items[0].StatusLabel)
	s.errResp(http.MethodPut, "/v1/sessions/drv-1/language", languageRequest{Language: "de"}, http.StatusBadRequest)

	small := "small"
	v = s.view(http.MethodPut, "/v1/sessions/drv-1/accessibility", accessibilityRequest{FontSize: &small}, http.StatusOK)
	s.Require().Equal(14, v.Accessibility.FontPixels)

	code, _ := s.do(http.MethodDelete, "/v1/sessions/drv-1", nil)
	s.Require().Equal(http.StatusNoContent, code)

	v = s.view(http.MethodGet, "/v1/sessions/drv-1", nil, http.StatusOK)
	s.Require().Equal("pt", string(v.Language))
}

func (s *APISuite) TestUnknownFieldRejected() {
	code, _ := s.do(http.MethodPut, "/v1/sessions/drv-1/tab", map[string]string{"tab": "receipt", "x": "y"})
	s.Require().Equal(http.StatusBadRequest, code)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func TestPermissionDeniedIsForbidden(t *testing.T) {
	svc := driver.New(deliveries.NewDefault(), fake.Denying(), func(string) driver.Submitter { return stubSubmitter{} }, nil, driver.Config{})
	srv := httptest.NewServer(New(svc).Handler(Options{}))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/v1/sessions/d/tab", bytes.NewBufferString(`{"tab":"receipt"}`))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = http.Post(srv.URL+"/v1/sessions/d/camera/start", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	require.Equal(t, capture.StateIdle, e.View.Receipt.CameraState)
	require.Len(t, e.View.Toasts, 1)
}

func TestSwaggerServed(t *testing.T) {
	sw := filepath.Join(t.TempDir(), "swagger.json")
	require.NoError(t, os.WriteFile(sw, []byte(`{"swagger":"2.0"}`), 0o600))

	svc := driver.New(deliveries.NewDefault(), fake.New("x"), nil, nil, driver.Config{})
	srv := httptest.NewServer(New(svc).Handler(Options{SwaggerPath: sw}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/swagger.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	require.Contains(t, string(body), `"swagger"`)
}

// Every API route must be described in the shipped swagger document.
func TestSwaggerDocumentsRoutes(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "api", "driverbox.swagger.json"))
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	svc := driver.New(deliveries.NewDefault(), fake.New("x"), nil, nil, driver.Config{})
	routes, ok := New(svc).Handler(Options{}).(chi.Routes)
	require.True(t, ok)

	err = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		ops, ok := doc.Paths[route]
		require.True(t, ok, "route %s is not documented", route)
		_, ok = ops[strings.ToLower(method)]
		require.True(t, ok, "%s %s is not documented", method, route)
		return nil
	})
	require.NoError(t, err)
}
