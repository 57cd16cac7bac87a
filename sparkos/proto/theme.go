package proto

import "image/color"

// Theme is the calculator color scheme.
type Theme struct {
	Background color.RGBA
	DisplayBg  color.RGBA
	DisplayFg  color.RGBA
	KeyBg      color.RGBA
	KeyFg      color.RGBA
	OperatorBg color.RGBA
	Accent     color.RGBA
}

// DefaultTheme is used until a configuration says otherwise.
var DefaultTheme = Theme{
	Background: color.RGBA{R: 0x10, G: 0x12, B: 0x16, A: 0xFF},
	DisplayBg:  color.RGBA{R: 0x1C, G: 0x2B, B: 0x22, A: 0xFF},
	DisplayFg:  color.RGBA{R: 0xB8, G: 0xF5, B: 0xC8, A: 0xFF},
	KeyBg:      color.RGBA{R: 0x2E, G: 0x32, B: 0x3A, A: 0xFF},
	KeyFg:      color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF},
	OperatorBg: color.RGBA{R: 0x3E, G: 0x4C, B: 0x66, A: 0xFF},
	Accent:     color.RGBA{R: 0xE8, G: 0x8A, B: 0x2C, A: 0xFF},
}

const themeColors = 7

// ThemePayloadBytes is the encoded size of a Theme.
const ThemePayloadBytes = themeColors * 3

func (t *Theme) colors() [themeColors]*color.RGBA {
	return [themeColors]*color.RGBA{
		&t.Background,
		&t.DisplayBg,
		&t.DisplayFg,
		&t.KeyBg,
		&t.KeyFg,
		&t.OperatorBg,
		&t.Accent,
	}
}

// ThemePayload encodes a MsgThemeUpdate payload.
//
// Layout: seven colors in field order (Background, DisplayBg, DisplayFg,
// KeyBg, KeyFg, OperatorBg, Accent), each as r, g, b bytes. Alpha is not
// carried; decoded colors are opaque.
func ThemePayload(t Theme) []byte {
	buf := make([]byte, 0, ThemePayloadBytes)
	for _, c := range t.colors() {
		buf = append(buf, c.R, c.G, c.B)
	}
	return buf
}

// DecodeThemePayload decodes a ThemePayload.
func DecodeThemePayload(payload []byte) (Theme, bool) {
	if len(payload) < ThemePayloadBytes {
		return Theme{}, false
	}
	var t Theme
	for i, c := range t.colors() {
		b := payload[i*3 : i*3+3]
		*c = color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xFF}
	}
	return t, true
}
