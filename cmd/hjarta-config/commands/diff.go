package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// writeDiff prints a line diff of before and after, labelled with name.
func writeDiff(out io.Writer, name string, before, after []byte) {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(out, "--- %s\n", name)
	_, _ = bold.Fprintf(out, "+++ %s\n", name)

	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)

	for _, diff := range diffs {
		for _, line := range splitLines(diff.Text) {
			switch diff.Type {
			case diffmatchpatch.DiffDelete:
				_, _ = removed.Fprintln(out, "-"+line)
			case diffmatchpatch.DiffInsert:
				_, _ = added.Fprintln(out, "+"+line)
			case diffmatchpatch.DiffEqual:
				_, _ = fmt.Fprintln(out, " "+line)
			}
		}
	}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
