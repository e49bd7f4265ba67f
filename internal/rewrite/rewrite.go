// Package rewrite applies a resolved order to a whole column, formatting
// recognized cells as ISO-8601 and passing everything else through verbatim.
package rewrite

import (
	"fmt"

	"github.com/KaramelBytes/datefix-cli/internal/dateparse"
)

// ISO maps a token through order and renders it as YYYY-MM-DD, with a
// THH:MM:SS suffix (plus any captured offset) when the cell carried a time.
// Tokens whose mapped components are not a plausible date report ok=false.
func ISO(t dateparse.Token, order dateparse.Order) (string, bool) {
	year, month, day := order.Apply(t.A, t.B, t.C)
	if year < 1000 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	s := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if t.HasTime {
		s += fmt.Sprintf("T%02d:%02d:%02d%s", t.Hour, t.Minute, t.Second, t.Offset)
	}
	return s, true
}

// Column rewrites one column index across all rows in place and returns how
// many cells changed. Cells that do not tokenize, or do not form a valid date
// under the resolved order, keep their original text; a stray bad row never
// fails the file.
func Column(rows [][]string, idx int, order dateparse.Order) int {
	changed := 0
	for _, row := range rows {
		if idx >= len(row) {
			continue
		}
		tok, ok := dateparse.Parse(row[idx])
		if !ok {
			continue
		}
		iso, ok := ISO(tok, order)
		if !ok {
			continue
		}
		if row[idx] != iso {
			row[idx] = iso
			changed++
		}
	}
	return changed
}
