package console

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"sparkcalc/sparkos/calc"
)

func TestPlainMirrorAppendsLines(t *testing.T) {
	g := NewWithT(t)
	var buf bytes.Buffer

	m := New(&buf)
	e := calc.New(m)
	e.Refresh()
	e.Apply(calc.Digit('4'))
	e.Apply(calc.Digit('2'))

	g.Expect(buf.String()).To(Equal("display: 0\ndisplay: 4\ndisplay: 42\n"))
	g.Expect(m.Close()).To(Succeed())
}

func TestLiveMirrorRedraws(t *testing.T) {
	g := NewWithT(t)
	var buf bytes.Buffer

	m := NewLive(&buf)
	m.SetText("1")
	m.SetText("12")

	out := buf.String()
	g.Expect(out).To(ContainSubstring("display: 1\n"))
	g.Expect(out).To(HaveSuffix("display: 12\n"))
	g.Expect(strings.Count(out, "display:")).To(Equal(2))

	g.Expect(m.Close()).To(Succeed())
	g.Expect(buf.String()).To(HaveSuffix("\n\n"))

	// After Close updates fall back to plain lines.
	m.SetText("3")
	g.Expect(buf.String()).To(HaveSuffix("display: 3\n"))
}

func TestIsTerminal(t *testing.T) {
	g := NewWithT(t)

	g.Expect(IsTerminal(&bytes.Buffer{})).To(BeFalse())

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	g.Expect(err).NotTo(HaveOccurred())
	defer f.Close()
	g.Expect(IsTerminal(f)).To(BeFalse())
	g.Expect(New(f).live).To(BeNil())
}
