package capture

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// ErrPermissionDenied is returned by Camera.Open when the device refuses access.
var ErrPermissionDenied = errors.New("camera permission denied")

var ErrInvalidPhoto = errors.New("invalid photo payload")

// MaxPhotoBytes caps one decoded photo. An occurrence carries up to four of
// them in a single broker message.
const MaxPhotoBytes = 3 << 20

// MaxPhotoDataURLBytes is the longest data URL accepted for a photo.
const MaxPhotoDataURLBytes = (MaxPhotoBytes+2)/3*4 + 64

// Frame is one still image taken from a stream.
type Frame struct {
	ContentType string
	Data        []byte
}

// Stream is a live camera handle. Stop must be called exactly once by its owner.
type Stream interface {
	Frame(ctx context.Context) (Frame, error)
	Stop() error
}

type Camera interface {
	Open(ctx context.Context) (Stream, error)
}

// DataURL encodes a frame as a data URL, the photo format the client renders.
func (f Frame) DataURL() string {
	ct := f.ContentType
	if ct == "" {
		ct = http.DetectContentType(f.Data)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

// CheckSize rejects frames over MaxPhotoBytes.
func (f Frame) CheckSize() error {
	if len(f.Data) > MaxPhotoBytes {
		return errors.Wrapf(ErrInvalidPhoto, "photo is %d bytes, limit %d", len(f.Data), MaxPhotoBytes)
	}
	return nil
}

// ParseDataURL validates a photo uploaded from the gallery and decodes it.
// Only base64 image payloads are accepted.
func ParseDataURL(s string) (Frame, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return Frame{}, errors.Wrap(ErrInvalidPhoto, "missing data: prefix")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Frame{}, errors.Wrap(ErrInvalidPhoto, "missing payload")
	}
	ct, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return Frame{}, errors.Wrap(ErrInvalidPhoto, "not base64")
	}
	if !strings.HasPrefix(ct, "image/") {
		return Frame{}, errors.Wrapf(ErrInvalidPhoto, "content type %q", ct)
	}
	if len(payload) > base64.StdEncoding.EncodedLen(MaxPhotoBytes) {
		return Frame{}, errors.Wrapf(ErrInvalidPhoto, "photo exceeds %d bytes", MaxPhotoBytes)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Frame{}, errors.Wrap(ErrInvalidPhoto, err.Error())
	}
	if len(data) == 0 {
		return Frame{}, errors.Wrap(ErrInvalidPhoto, "empty image")
	}
	f := Frame{ContentType: ct, Data: data}
	if err := f.CheckSize(); err != nil {
		return Frame{}, err
	}
	return f, nil
}
