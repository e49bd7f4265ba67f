package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/datefix-cli/internal/dateparse"
)

// resetConvertFlags clears the package-level flag state shared across
// executions so tests do not leak values into each other.
func resetConvertFlags() {
	cvOutput, cvEncoding, cvDelimiter = "", "", ""
	cvSample = 0
	cvNoPrompt = false
	cvAssume, cvForce = "", ""
}

func execRoot(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
}

func TestParseOrderFlag(t *testing.T) {
	o, err := parseOrderFlag("assume", "")
	if err != nil || o != nil {
		t.Fatalf("empty flag: %v, %v", o, err)
	}
	o, err = parseOrderFlag("assume", "mdy")
	if err != nil || o == nil || *o != dateparse.MDY {
		t.Fatalf("mdy: %v, %v", o, err)
	}
	if _, err = parseOrderFlag("force-order", "YDM"); err == nil {
		t.Fatal("invalid order accepted")
	}
}

func TestParseDelimiterFlag(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want rune
	}{
		{"", 0},
		{",", ','},
		{";", ';'},
		{"tab", '\t'},
		{"\t", '\t'},
	} {
		got, err := parseDelimiterFlag(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("parseDelimiterFlag(%q) = %q, %v", tc.in, got, err)
		}
	}
	if _, err := parseDelimiterFlag("|"); err == nil {
		t.Fatal("unsupported delimiter accepted")
	}
}

func TestConvertSubcommandMatchesRoot(t *testing.T) {
	resetConvertFlags()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(in, []byte("date,note\n13/05/2023,foo\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	out := filepath.Join(dir, "out.csv")
	execRoot(t, "convert", in, "-o", out, "--no-prompt")
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(b) != "date,note\n2023-05-13,foo\n" {
		t.Fatalf("convert subcommand output:\n%s", b)
	}
}

func TestNonTerminalStdinDegradesToNoPrompt(t *testing.T) {
	resetConvertFlags()
	old := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	defer func() { stdinIsTerminal = old }()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	content := "when\n01/02/2023\n03/04/2023\n"
	if err := os.WriteFile(in, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	out := filepath.Join(dir, "out.csv")
	// Prompting nominally enabled, no --assume: must not block on stdin, and
	// the ambiguous column must pass through unchanged.
	execRoot(t, in, "-o", out)
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(b) != content {
		t.Fatalf("ambiguous column modified without a prompt:\n%s", b)
	}
}
