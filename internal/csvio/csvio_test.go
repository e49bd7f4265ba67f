package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadFileBasics(t *testing.T) {
	path := writeFixture(t, "in.csv", "date,note\n13/05/2023,foo\n14/05/2023\n")
	f, err := ReadFile(path, "", 0)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if f.Synthetic {
		t.Fatal("header row misread as data")
	}
	if len(f.Header) != 2 || f.Header[0] != "date" {
		t.Fatalf("header = %v", f.Header)
	}
	if len(f.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(f.Rows))
	}
	// Short row padded to header width.
	if len(f.Rows[1]) != 2 || f.Rows[1][1] != "" {
		t.Fatalf("row not padded: %v", f.Rows[1])
	}
	if f.Delimiter != ',' {
		t.Fatalf("delimiter = %q", f.Delimiter)
	}
}

func TestSniffDelimiter(t *testing.T) {
	if d := SniffDelimiter("x.csv", []byte("a;b;c\n1;2;3\n")); d != ';' {
		t.Fatalf("semicolon file sniffed as %q", d)
	}
	if d := SniffDelimiter("x.csv", []byte("a\tb\tc\n")); d != '\t' {
		t.Fatalf("tab file sniffed as %q", d)
	}
	if d := SniffDelimiter("x.tsv", []byte("a,b,c\n")); d != '\t' {
		t.Fatalf(".tsv extension ignored, got %q", d)
	}
	if d := SniffDelimiter("x.csv", []byte("a,b,c\n")); d != ',' {
		t.Fatalf("comma file sniffed as %q", d)
	}
}

func TestReadFileWideRowKeepsHeader(t *testing.T) {
	path := writeFixture(t, "in.csv", "a,b\n1,2,3\n")
	f, err := ReadFile(path, "", 0)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(f.Header) != 2 {
		t.Fatalf("header widened to %v", f.Header)
	}
	if len(f.Rows[0]) != 3 {
		t.Fatalf("wide row truncated: %v", f.Rows[0])
	}
	out := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteFile(out, f, ""); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "a,b\n1,2,3\n" {
		t.Fatalf("ragged file not preserved byte-for-byte: %q", b)
	}
}

func TestReadFileSynthesizesHeader(t *testing.T) {
	path := writeFixture(t, "in.csv", "13/05/2023,42\n14/05/2023,43\n")
	f, err := ReadFile(path, "", 0)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !f.Synthetic {
		t.Fatal("all-data first row not detected as headerless")
	}
	if f.Header[0] != "col_1" || f.Header[1] != "col_2" {
		t.Fatalf("synthesized header = %v", f.Header)
	}
	if len(f.Rows) != 2 {
		t.Fatalf("first data row swallowed: %d rows", len(f.Rows))
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := &File{
		Header:    []string{"date", "note"},
		Rows:      [][]string{{"2023-05-13", "has, comma"}, {"2023-05-14", `quo"te`}},
		Delimiter: ',',
	}
	path := filepath.Join(dir, "out.csv")
	if err := WriteFile(path, in, ""); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path, "", 0)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Header[1] != "note" || got.Rows[0][1] != "has, comma" || got.Rows[1][1] != `quo"te` {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("stale temp file %s", e.Name())
		}
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	// "café" in ISO-8859-1: é is a single 0xE9 byte.
	raw := []byte{'n', 'o', 't', 'e', '\n', 'c', 'a', 'f', 0xE9, '\n'}
	path := writeFixture(t, "latin.csv", string(raw))
	f, err := ReadFile(path, "ISO-8859-1", 0)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if f.Rows[0][0] != "café" {
		t.Fatalf("decoded cell = %q", f.Rows[0][0])
	}

	out := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteFile(out, f, "ISO-8859-1"); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(b), string([]byte{0xE9})) {
		t.Fatalf("output not re-encoded to latin-1: %q", b)
	}
}

func TestWriteFileFailureLeavesNoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "missing", "out.csv")
	f := &File{Header: []string{"a"}, Rows: [][]string{{"1"}}, Delimiter: ','}
	if err := WriteFile(target, f, ""); err == nil {
		t.Fatal("expected error for nonexistent target directory")
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("partial output left at target: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("leftover files after failed write: %v", entries)
	}
}

func TestWriteFileEncodeFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.csv")
	// 日本 has no ISO-8859-1 representation; the encoder must reject it.
	f := &File{Header: []string{"note"}, Rows: [][]string{{"日本"}}, Delimiter: ','}
	if err := WriteFile(target, f, "ISO-8859-1"); err == nil {
		t.Fatal("expected encode error")
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("partial output left at target: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("temp file left after failed write: %v", entries)
	}
}

func TestReadFileErrors(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"), "", 0); err == nil {
		t.Fatal("expected error for missing file")
	}
	path := writeFixture(t, "in.csv", "a,b\n1,2\n")
	if _, err := ReadFile(path, "no-such-encoding", 0); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

func TestReadFileEmpty(t *testing.T) {
	path := writeFixture(t, "empty.csv", "")
	f, err := ReadFile(path, "", 0)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if f.Header != nil || len(f.Rows) != 0 {
		t.Fatalf("empty file produced %+v", f)
	}
}
