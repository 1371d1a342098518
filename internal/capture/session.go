package capture

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

type State string

const (
	StateIdle          State = "idle"
	StateCameraActive  State = "camera_active"
	StatePhotoCaptured State = "photo_captured"
)

var (
	ErrCameraNotActive = errors.New("camera is not active")
	ErrNoCamera        = errors.New("no camera configured")
)

// Session owns at most one open stream and the photo taken from it.
// The stream is stopped on capture, cancel, Close and on every error path.
type Session struct {
	cam    Camera
	stream Stream
	state  State
	photo  string
}

func NewSession(cam Camera) *Session {
	return &Session{cam: cam, state: StateIdle}
}

func (s *Session) State() State { return s.state }

// Photo returns the captured photo as a data URL, or "" when there is none.
func (s *Session) Photo() string { return s.photo }

// StartCamera acquires a stream. A previous photo is kept until a new one
// is captured; an already active stream is reused.
func (s *Session) StartCamera(ctx context.Context) error {
	if s.stream != nil {
		return nil
	}
	if s.cam == nil {
		return ErrNoCamera
	}
	st, err := s.cam.Open(ctx)
	if err != nil {
		return errors.Wrap(err, "open camera")
	}
	s.stream = st
	s.state = StateCameraActive
	return nil
}

// Capture snapshots the current frame and releases the stream right away.
func (s *Session) Capture(ctx context.Context) (string, error) {
	if s.stream == nil {
		return "", ErrCameraNotActive
	}
	frame, err := s.stream.Frame(ctx)
	s.release()
	if err == nil {
		err = frame.CheckSize()
	}
	if err != nil {
		s.state = s.restState()
		return "", errors.Wrap(err, "capture frame")
	}
	s.photo = frame.DataURL()
	s.state = StatePhotoCaptured
	return s.photo, nil
}

// Cancel stops an active stream without taking a photo.
func (s *Session) Cancel() {
	s.release()
	s.state = s.restState()
}

// SelectFromGallery skips the camera and uses an uploaded photo.
func (s *Session) SelectFromGallery(dataURL string) error {
	if _, err := ParseDataURL(dataURL); err != nil {
		return err
	}
	s.release()
	s.photo = dataURL
	s.state = StatePhotoCaptured
	return nil
}

// RemovePhoto drops the photo so the driver can retake it.
func (s *Session) RemovePhoto() {
	s.photo = ""
	if s.stream == nil {
		s.state = StateIdle
	}
}

// Close is the teardown hook of the owning screen.
func (s *Session) Close() {
	s.release()
	s.state = s.restState()
}

func (s *Session) restState() State {
	if s.photo != "" {
		return StatePhotoCaptured
	}
	return StateIdle
}

func (s *Session) release() {
	if s.stream == nil {
		return
	}
	if err := s.stream.Stop(); err != nil {
		slog.Warn("stop camera stream", "error", err.Error())
	}
	s.stream = nil
}
