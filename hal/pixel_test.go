package hal

import (
	"image/color"
	"testing"
)

func TestRGB565RoundTripPrimaries(t *testing.T) {
	for _, c := range []color.RGBA{
		{0, 0, 0, 0xFF},
		{0xFF, 0xFF, 0xFF, 0xFF},
		{0xFF, 0, 0, 0xFF},
		{0, 0xFF, 0, 0xFF},
		{0, 0, 0xFF, 0xFF},
	} {
		got := UnpackRGB565(PackRGB565(c))
		if got != c {
			t.Fatalf("round trip %v = %v", c, got)
		}
	}
}

func TestPackRGB565Layout(t *testing.T) {
	if got := PackRGB565(color.RGBA{R: 0xFF}); got != 0xF800 {
		t.Fatalf("red = %#04x, want 0xf800", got)
	}
	if got := PackRGB565(color.RGBA{G: 0xFF}); got != 0x07E0 {
		t.Fatalf("green = %#04x, want 0x07e0", got)
	}
	if got := PackRGB565(color.RGBA{B: 0xFF}); got != 0x001F {
		t.Fatalf("blue = %#04x, want 0x001f", got)
	}
}

func TestPixelAt(t *testing.T) {
	fb := newHostFramebuffer(4, 3)
	fb.ClearRGB(0xFF, 0, 0)

	p, ok := PixelAt(fb, 3, 2)
	if !ok || p != 0xF800 {
		t.Fatalf("PixelAt(3,2) = %#04x, %v", p, ok)
	}
	if _, ok := PixelAt(fb, 4, 0); ok {
		t.Fatal("expected out of bounds x to fail")
	}
	if _, ok := PixelAt(fb, 0, -1); ok {
		t.Fatal("expected out of bounds y to fail")
	}
	if _, ok := PixelAt(nil, 0, 0); ok {
		t.Fatal("expected nil framebuffer to fail")
	}
}

func TestFramebufferPresentSnapshot(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	dst := make([]byte, len(fb.buf))

	fb.ClearRGB(0xFF, 0xFF, 0xFF)
	if frames := fb.snapshotRGB565(dst); frames != 0 || dst[0] != 0 {
		t.Fatalf("unpresented frame leaked: frames=%d first=%#x", frames, dst[0])
	}

	if err := fb.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if frames := fb.snapshotRGB565(dst); frames != 1 || dst[0] != 0xFF || dst[1] != 0xFF {
		t.Fatalf("snapshot after present: frames=%d first=%#x%02x", frames, dst[1], dst[0])
	}
}
