package driver

import "github.com/pkg/errors"

type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

var ErrUnknownFontSize = errors.New("unknown font size")

func ParseFontSize(s string) (FontSize, error) {
	switch FontSize(s) {
	case FontSmall, FontMedium, FontLarge:
		return FontSize(s), nil
	}
	return "", errors.Wrapf(ErrUnknownFontSize, "%q", s)
}

// Pixels is the root font size the client applies.
func (f FontSize) Pixels() int {
	switch f {
	case FontSmall:
		return 14
	case FontLarge:
		return 20
	}
	return 16
}

type Accessibility struct {
	FontSize     FontSize `json:"fontSize"`
	HighContrast bool     `json:"highContrast"`
}

func defaultAccessibility() Accessibility {
	return Accessibility{FontSize: FontMedium}
}
