package resolve

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/datefix-cli/internal/dateparse"
)

const maxPromptSamples = 10

// TerminalPrompter asks the operator on stdin/stdout. Invalid answers re-ask;
// EOF on the input stream is reported as an error so a detached run fails
// loudly instead of looping.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{In: in, Out: out}
}

func (p *TerminalPrompter) ResolveColumn(name string, samples []string) (Choice, error) {
	fmt.Fprintf(p.Out, "\nColumn %q is ambiguous. Sample values:\n", name)
	n := len(samples)
	if n > maxPromptSamples {
		n = maxPromptSamples
	}
	for _, s := range samples[:n] {
		fmt.Fprintf(p.Out, "  - %s\n", s)
	}
	fmt.Fprintln(p.Out, "\nChoose the date order for this column:")
	fmt.Fprintln(p.Out, "  1) DMY  (e.g. 31/12/2024)")
	fmt.Fprintln(p.Out, "  2) MDY  (e.g. 12/31/2024)")
	fmt.Fprintln(p.Out, "  3) YMD  (e.g. 2024-12-31)")
	fmt.Fprintln(p.Out, "  4) Skip (leave values unchanged)")

	sc := bufio.NewScanner(p.In)
	for {
		fmt.Fprint(p.Out, "Enter 1/2/3/4: ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return Choice{}, fmt.Errorf("read prompt answer: %w", err)
			}
			return Choice{}, fmt.Errorf("input closed before column %q was resolved", name)
		}
		switch strings.TrimSpace(sc.Text()) {
		case "1":
			return Choice{Order: dateparse.DMY}, nil
		case "2":
			return Choice{Order: dateparse.MDY}, nil
		case "3":
			return Choice{Order: dateparse.YMD}, nil
		case "4":
			return Choice{Skip: true}, nil
		}
		fmt.Fprintln(p.Out, "Invalid choice. Please enter 1, 2, 3, or 4.")
	}
}
