//go:build cgo

package hal

import "testing"

func TestHostKeyCodesAreNamed(t *testing.T) {
	for _, m := range hostKeyCodes {
		if m.code == KeyUnknown || m.code.String() == "unknown" {
			t.Fatalf("ebiten key %v maps to unnamed code %d", m.key, m.code)
		}
	}
}
