package fake

import (
	"bytes"
	"context"
	"hash/fnv"
	"image"
	"image/color"
	"image/jpeg"
	"sync/atomic"

	"github.com/BearBump/DriverBox/internal/capture"
	"github.com/pkg/errors"
)

// Camera: заглушка камеры устройства для демо и тестов.
// Кадр детерминированный: цвет зависит от seed и номера кадра.
type Camera struct {
	seed   string
	deny   bool
	frames atomic.Int64
	open   atomic.Int64
}

func New(seed string) *Camera { return &Camera{seed: seed} }

// Denying returns a camera that refuses access, like a device without permission.
func Denying() *Camera { return &Camera{deny: true} }

// OpenStreams is the number of streams not yet stopped.
func (c *Camera) OpenStreams() int64 { return c.open.Load() }

func (c *Camera) Open(ctx context.Context) (capture.Stream, error) {
	if c.deny {
		return nil, capture.ErrPermissionDenied
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.open.Add(1)
	return &stream{cam: c}, nil
}

type stream struct {
	cam     *Camera
	stopped atomic.Bool
}

func (s *stream) Frame(ctx context.Context) (capture.Frame, error) {
	if s.stopped.Load() {
		return capture.Frame{}, errors.New("stream stopped")
	}
	n := s.cam.frames.Add(1)

	h := fnv.New32a()
	_, _ = h.Write([]byte(s.cam.seed))
	v := h.Sum32() + uint32(n)

	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	fill := color.RGBA{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16), A: 0xff}
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return capture.Frame{}, errors.Wrap(err, "encode jpeg")
	}
	return capture.Frame{ContentType: "image/jpeg", Data: buf.Bytes()}, nil
}

func (s *stream) Stop() error {
	if s.stopped.CompareAndSwap(false, true) {
		s.cam.open.Add(-1)
	}
	return nil
}
