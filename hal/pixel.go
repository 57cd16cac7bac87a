package hal

import "image/color"

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// PackRGB565 converts c to an RGB565 pixel. Alpha is ignored.
func PackRGB565(c color.RGBA) uint16 {
	return rgb565(c.R, c.G, c.B)
}

// UnpackRGB565 expands an RGB565 pixel to an opaque color.
func UnpackRGB565(p uint16) color.RGBA {
	r, g, b := rgb888From565(p)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// PixelAt reads the RGB565 pixel at (x, y). It returns false outside the
// framebuffer or for other pixel formats.
func PixelAt(fb Framebuffer, x, y int) (uint16, bool) {
	if fb == nil || fb.Format() != PixelFormatRGB565 {
		return 0, false
	}
	if x < 0 || y < 0 || x >= fb.Width() || y >= fb.Height() {
		return 0, false
	}
	buf := fb.Buffer()
	off := y*fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return 0, false
	}
	return uint16(buf[off]) | uint16(buf[off+1])<<8, true
}
