package schedule

import (
	"fmt"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultLighten = 0.9
	DefaultDarken  = 0.8
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func ValidColor(hex string) bool {
	return hexColor.MatchString(hex)
}

// Lighten смешивает цвет с белым: amount=0 оставляет цвет, 1 даёт белый.
func Lighten(hex string, amount float64) (string, error) {
	c, err := parseColor(hex)
	if err != nil {
		return "", err
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendRgb(white, clamp01(amount)).Clamped().Hex(), nil
}

// Darken умножает каналы на amount: 1 оставляет цвет, 0 даёт чёрный.
func Darken(hex string, amount float64) (string, error) {
	c, err := parseColor(hex)
	if err != nil {
		return "", err
	}
	black := colorful.Color{}
	return c.BlendRgb(black, 1-clamp01(amount)).Clamped().Hex(), nil
}

func parseColor(hex string) (colorful.Color, error) {
	if !ValidColor(hex) {
		return colorful.Color{}, fmt.Errorf("неверный цвет %q: ожидается #rrggbb", hex)
	}
	return colorful.Hex(hex)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
