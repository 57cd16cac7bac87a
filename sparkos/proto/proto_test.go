package proto

import (
	"image/color"
	"testing"
)

func TestThemePayloadRoundTrip(t *testing.T) {
	in := DefaultTheme
	in.Accent = color.RGBA{R: 1, G: 2, B: 3, A: 0xFF}

	payload := ThemePayload(in)
	if len(payload) != ThemePayloadBytes {
		t.Fatalf("payload len = %d, want %d", len(payload), ThemePayloadBytes)
	}
	out, ok := DecodeThemePayload(payload)
	if !ok {
		t.Fatal("decode failed")
	}
	if out != in {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestThemePayloadDropsAlpha(t *testing.T) {
	in := DefaultTheme
	in.KeyFg = color.RGBA{R: 9, G: 8, B: 7, A: 0x10}

	out, ok := DecodeThemePayload(ThemePayload(in))
	if !ok {
		t.Fatal("decode failed")
	}
	if out.KeyFg != (color.RGBA{R: 9, G: 8, B: 7, A: 0xFF}) {
		t.Fatalf("KeyFg = %+v", out.KeyFg)
	}
}

func TestDecodeThemePayloadShort(t *testing.T) {
	if _, ok := DecodeThemePayload(make([]byte, ThemePayloadBytes-1)); ok {
		t.Fatal("expected short payload to fail")
	}
}

func TestLogLinePayload(t *testing.T) {
	tests := []struct {
		line  string
		limit int
		want  string
	}{
		{"calc: ready\n", 128, "calc: ready"},
		{"abcdef", 4, "abcd"},
		{"1÷2", 2, "1"},
		{"1÷2", 3, "1÷"},
		{"", 8, ""},
	}
	for _, tt := range tests {
		if got := string(LogLinePayload(tt.line, tt.limit)); got != tt.want {
			t.Fatalf("LogLinePayload(%q, %d) = %q, want %q", tt.line, tt.limit, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if MsgLogLine.String() != "log_line" || MsgThemeUpdate.String() != "theme_update" || Kind(0).String() != "unknown" {
		t.Fatal("unexpected kind names")
	}
}
