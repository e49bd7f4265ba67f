// Package csvio reads a whole CSV file into memory and writes it back,
// handling delimiter sniffing, text encodings, header synthesis, and atomic
// output placement. The rest of the pipeline only ever sees [][]string.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/KaramelBytes/datefix-cli/internal/dateparse"
)

// File is an in-memory CSV: the header as read, plus data rows padded up to
// header width. Wider ragged rows are kept as read; the header is never
// resized to fit them.
type File struct {
	Header    []string
	Rows      [][]string
	Delimiter rune
	// Synthetic is true when the first row looked like data, so Header holds
	// generated col_N names and the first row stays in Rows.
	Synthetic bool
}

const sniffBytes = 64 * 1024

func lookupEncoding(name string) (encoding.Encoding, error) {
	n := strings.TrimSpace(strings.ToLower(name))
	if n == "" || n == "utf-8" || n == "utf8" {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// SniffDelimiter picks among ',', ';' and '\t' by counting occurrences in the
// first chunk of the file, with a .tsv extension shortcut.
func SniffDelimiter(path string, chunk []byte) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	if len(chunk) > sniffBytes {
		chunk = chunk[:sniffBytes]
	}
	// Only look at the first line: later rows may contain free text.
	if i := bytes.IndexByte(chunk, '\n'); i >= 0 {
		chunk = chunk[:i]
	}
	best, bestCount := ',', 0
	for _, cand := range []rune{',', ';', '\t'} {
		if n := bytes.Count(chunk, []byte(string(cand))); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

// headerless reports whether the first row looks like data rather than column
// names: every non-empty cell is a date token or a plain number.
func headerless(row []string) bool {
	seen := false
	for _, cell := range row {
		v := strings.TrimSpace(cell)
		if v == "" {
			continue
		}
		seen = true
		if _, ok := dateparse.Parse(v); ok {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			continue
		}
		return false
	}
	return seen
}

// ReadFile loads the whole CSV into memory. An empty encoding (or utf-8)
// reads bytes as-is; any other name goes through the IANA registry. A zero
// delimiter is sniffed from the content. Short rows are padded to the widest
// row so column indexes are always addressable.
func ReadFile(path, encodingName string, delimiter rune) (*File, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if enc != nil {
		raw, _, err = transform.Bytes(enc.NewDecoder(), raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", encodingName, err)
		}
	}
	if delimiter == 0 {
		delimiter = SniffDelimiter(path, raw)
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	f := &File{Delimiter: delimiter}
	if len(records) == 0 {
		return f, nil
	}

	if headerless(records[0]) {
		width := 0
		for _, rec := range records {
			if len(rec) > width {
				width = len(rec)
			}
		}
		f.Synthetic = true
		f.Header = make([]string, width)
		for i := range f.Header {
			f.Header[i] = fmt.Sprintf("col_%d", i+1)
		}
		f.Rows = padRows(records, width)
		return f, nil
	}
	f.Header = records[0]
	f.Rows = padRows(records[1:], len(f.Header))
	return f, nil
}

// padRows extends rows shorter than width with empty cells so every header
// index is addressable. Rows already at or past width are left as read.
func padRows(rows [][]string, width int) [][]string {
	for i, rec := range rows {
		if len(rec) < width {
			padded := make([]string, width)
			copy(padded, rec)
			rows[i] = padded
		}
	}
	return rows
}

// WriteFile writes the file atomically: content goes to a uniquely named temp
// file beside the target, which is renamed into place only after a clean
// flush. A failed run never leaves a truncated output at the target path.
func WriteFile(path string, f *File, encodingName string) (err error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(path),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	defer func() {
		if err != nil {
			out.Close()
			os.Remove(tmp)
		}
	}()

	var dst io.Writer = out
	var tw *transform.Writer
	if enc != nil {
		tw = transform.NewWriter(out, enc.NewEncoder())
		dst = tw
	}
	w := csv.NewWriter(dst)
	w.Comma = f.Delimiter
	if !f.Synthetic && f.Header != nil {
		if err = w.Write(f.Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for i, row := range f.Rows {
		if err = w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if tw != nil {
		if err = tw.Close(); err != nil {
			return fmt.Errorf("finish encoding: %w", err)
		}
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("move output into place: %w", err)
	}
	return nil
}
