package snapshothttp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BearBump/DriverBox/internal/capture"
	"github.com/pkg/errors"
)

const maxSnapshotBytes = 10 << 20

// Camera talks to a network camera (or the device bridge on the phone)
// that exposes a still-image endpoint: GET /snapshot.
type Camera struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func New(baseURL, apiKey string) *Camera {
	if baseURL == "" {
		baseURL = "http://localhost:9100"
	}
	return &Camera{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Open checks that the camera answers and that we are allowed to use it.
// 401/403 mean the permission was refused.
func (c *Camera) Open(ctx context.Context) (capture.Stream, error) {
	resp, err := c.do(ctx, http.MethodHead, "/snapshot")
	if err != nil {
		return nil, err
	}
	_ = resp.Body.Close()
	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return &stream{c: c}, nil
}

func (c *Camera) do(ctx context.Context, method, path string) (*http.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	q := u.Query()
	if c.apiKey != "" {
		q.Set("apiKey", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return capture.ErrPermissionDenied
	case code/100 != 2:
		return fmt.Errorf("camera http %d", code)
	}
	return nil
}

type stream struct {
	c       *Camera
	stopped bool
}

func (s *stream) Frame(ctx context.Context) (capture.Frame, error) {
	if s.stopped {
		return capture.Frame{}, errors.New("stream stopped")
	}
	resp, err := s.c.do(ctx, http.MethodGet, "/snapshot")
	if err != nil {
		return capture.Frame{}, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp.StatusCode); err != nil {
		return capture.Frame{}, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes))
	if err != nil {
		return capture.Frame{}, errors.Wrap(err, "read snapshot")
	}
	if len(data) == 0 {
		return capture.Frame{}, errors.New("empty snapshot")
	}
	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		ct = http.DetectContentType(data)
	}
	return capture.Frame{ContentType: ct, Data: data}, nil
}

// Stop is local only: the snapshot endpoint holds no server-side session.
func (s *stream) Stop() error {
	s.stopped = true
	return nil
}
