// Command calcreplay runs key scripts through the calculator engine and
// prints the resulting display, one script per input line.
//
// Lines use the same escapes as the -keys flag of the app (\n Enter, \b
// Backspace, \e Escape). Blank lines and lines starting with '#' are
// skipped. Each line starts from a fresh calculator unless -session is set.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"sparkcalc/hal"
	"sparkcalc/internal/console"
	"sparkcalc/sparkos/calc"
	calctask "sparkcalc/sparkos/tasks/calc"
)

func main() {
	var (
		inPath  = flag.String("in", "", "Script file (default stdin).")
		outPath = flag.String("out", "", "Output file (default stdout).")
		session = flag.Bool("session", false, "Keep calculator state across lines.")
		trace   = flag.Bool("trace", false, "Print every display update, not only the final value.")
	)
	flag.Parse()

	in := io.Reader(os.Stdin)
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fatalf("open: %v", err)
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fatalf("create: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := replay(in, out, *session, *trace); err != nil {
		fatalf("replay: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func replay(in io.Reader, out io.Writer, session, trace bool) error {
	var tr calc.Display
	if trace {
		tr = console.New(out)
	}
	eng := calc.New(tr)

	sc := bufio.NewScanner(in)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !session {
			eng.ClearAll()
		}
		for _, ev := range hal.ScriptEvents(hal.UnescapeScript(line)) {
			if intent, ok := calctask.KeyIntent(ev); ok {
				eng.Apply(intent)
			}
		}
		if _, err := fmt.Fprintf(out, "%d: %s = %s\n", n, line, eng.Value()); err != nil {
			return err
		}
	}
	return sc.Err()
}
