package capture

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubStream struct {
	frame   Frame
	err     error
	stopped int
}

func (s *stubStream) Frame(ctx context.Context) (Frame, error) { return s.frame, s.err }
func (s *stubStream) Stop() error {
	s.stopped++
	return nil
}

type stubCamera struct {
	stream *stubStream
	err    error
	opened int
}

func (c *stubCamera) Open(ctx context.Context) (Stream, error) {
	c.opened++
	if c.err != nil {
		return nil, c.err
	}
	return c.stream, nil
}

var jpegFrame = Frame{ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff, 0xe0}}

func TestSession_CaptureReleasesStream(t *testing.T) {
	st := &stubStream{frame: jpegFrame}
	s := NewSession(&stubCamera{stream: st})
	require.Equal(t, StateIdle, s.State())

	require.NoError(t, s.StartCamera(context.Background()))
	require.Equal(t, StateCameraActive, s.State())

	photo, err := s.Capture(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatePhotoCaptured, s.State())
	require.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(jpegFrame.Data), photo)
	require.Equal(t, photo, s.Photo())
	require.Equal(t, 1, st.stopped)

	// released: second capture has no stream
	_, err = s.Capture(context.Background())
	require.ErrorIs(t, err, ErrCameraNotActive)
	require.Equal(t, 1, st.stopped)
}

func TestSession_CancelReleasesStream(t *testing.T) {
	st := &stubStream{frame: jpegFrame}
	s := NewSession(&stubCamera{stream: st})
	require.NoError(t, s.StartCamera(context.Background()))
	s.Cancel()
	require.Equal(t, StateIdle, s.State())
	require.Equal(t, 1, st.stopped)

	s.Cancel()
	require.Equal(t, 1, st.stopped, "stop is called once per stream")
}

func TestSession_CloseReleasesStream(t *testing.T) {
	st := &stubStream{frame: jpegFrame}
	s := NewSession(&stubCamera{stream: st})
	require.NoError(t, s.StartCamera(context.Background()))
	s.Close()
	require.Equal(t, 1, st.stopped)
	require.Equal(t, StateIdle, s.State())
}

func TestSession_FrameErrorReleasesStream(t *testing.T) {
	st := &stubStream{err: errors.New("sensor glitch")}
	s := NewSession(&stubCamera{stream: st})
	require.NoError(t, s.StartCamera(context.Background()))

	_, err := s.Capture(context.Background())
	require.Error(t, err)
	require.Equal(t, 1, st.stopped)
	require.Equal(t, StateIdle, s.State())
	require.Empty(t, s.Photo())
}

func TestSession_PermissionDeniedStaysIdle(t *testing.T) {
	cam := &stubCamera{err: ErrPermissionDenied}
	s := NewSession(cam)
	err := s.StartCamera(context.Background())
	require.ErrorIs(t, err, ErrPermissionDenied)
	require.Equal(t, StateIdle, s.State())

	// retry is allowed
	_ = s.StartCamera(context.Background())
	require.Equal(t, 2, cam.opened)
}

func TestSession_StartTwiceReusesStream(t *testing.T) {
	cam := &stubCamera{stream: &stubStream{frame: jpegFrame}}
	s := NewSession(cam)
	require.NoError(t, s.StartCamera(context.Background()))
	require.NoError(t, s.StartCamera(context.Background()))
	require.Equal(t, 1, cam.opened)
	s.Close()
}

func TestSession_NoCamera(t *testing.T) {
	s := NewSession(nil)
	require.ErrorIs(t, s.StartCamera(context.Background()), ErrNoCamera)
}

func TestSession_GalleryAndRemove(t *testing.T) {
	st := &stubStream{frame: jpegFrame}
	s := NewSession(&stubCamera{stream: st})
	require.NoError(t, s.StartCamera(context.Background()))

	photo := jpegFrame.DataURL()
	require.NoError(t, s.SelectFromGallery(photo))
	require.Equal(t, StatePhotoCaptured, s.State())
	require.Equal(t, 1, st.stopped, "gallery selection releases an open stream")

	s.RemovePhoto()
	require.Equal(t, StateIdle, s.State())
	require.Empty(t, s.Photo())

	require.ErrorIs(t, s.SelectFromGallery("not a data url"), ErrInvalidPhoto)
	require.Equal(t, StateIdle, s.State())
}

func TestSession_CancelKeepsPreviousPhoto(t *testing.T) {
	s := NewSession(&stubCamera{stream: &stubStream{frame: jpegFrame}})
	require.NoError(t, s.SelectFromGallery(jpegFrame.DataURL()))
	require.NoError(t, s.StartCamera(context.Background()))
	require.Equal(t, StateCameraActive, s.State())
	s.Cancel()
	require.Equal(t, StatePhotoCaptured, s.State())
}

func TestParseDataURL(t *testing.T) {
	f, err := ParseDataURL(jpegFrame.DataURL())
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", f.ContentType)
	require.Equal(t, jpegFrame.Data, f.Data)

	for _, bad := range []string{
		"",
		"data:image/png;base64",
		"data:image/png,raw",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png;base64,!!!",
		"data:image/png;base64,",
	} {
		_, err := ParseDataURL(bad)
		require.ErrorIs(t, err, ErrInvalidPhoto, bad)
	}
}

func TestParseDataURL_SizeLimit(t *testing.T) {
	atLimit := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(make([]byte, MaxPhotoBytes))
	require.LessOrEqual(t, len(atLimit), MaxPhotoDataURLBytes)
	_, err := ParseDataURL(atLimit)
	require.NoError(t, err)

	tooBig := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(make([]byte, MaxPhotoBytes+1))
	_, err = ParseDataURL(tooBig)
	require.ErrorIs(t, err, ErrInvalidPhoto)
}

func TestSession_OversizedFrameRejected(t *testing.T) {
	st := &stubStream{frame: Frame{ContentType: "image/jpeg", Data: make([]byte, MaxPhotoBytes+1)}}
	s := NewSession(&stubCamera{stream: st})
	require.NoError(t, s.StartCamera(context.Background()))

	_, err := s.Capture(context.Background())
	require.ErrorIs(t, err, ErrInvalidPhoto)
	require.Equal(t, 1, st.stopped)
	require.Equal(t, StateIdle, s.State())
	require.Empty(t, s.Photo())
}
