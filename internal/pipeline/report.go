package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
)

const reportSamples = 5

// Markdown renders the detection verdicts as a compact report, one line per
// column, suitable for stdout or a saved file.
func (r *Result) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATE COLUMN REPORT]\n")
	b.WriteString(fmt.Sprintf("File: %s\n", filepath.Base(r.Input)))
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Columns)))

	b.WriteString("[VERDICTS]\n")
	if len(r.Columns) == 0 {
		b.WriteString("- (no columns)\n")
	}
	for _, c := range r.Columns {
		v := c.Verdict
		switch {
		case !v.IsDate:
			b.WriteString(fmt.Sprintf("- %s: not a date column (%d/%d cells parsed)\n",
				safeName(c.Name), v.Parsed, v.NonEmpty))
		case v.Resolved:
			b.WriteString(fmt.Sprintf("- %s: date column, order %s (%d/%d cells parsed)\n",
				safeName(c.Name), v.Order, v.Parsed, v.NonEmpty))
		default:
			b.WriteString(fmt.Sprintf("- %s: date column, ambiguous (%s)",
				safeName(c.Name), v.Ambiguity))
			if n := len(c.Samples); n > 0 {
				if n > reportSamples {
					n = reportSamples
				}
				b.WriteString("; e.g. ")
				for i, s := range c.Samples[:n] {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(safeVal(s))
				}
			}
			b.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
