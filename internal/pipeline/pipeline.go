// Package pipeline wires the single pass over one CSV file: read, sample,
// classify, infer, resolve, rewrite, write.
package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/datefix-cli/internal/csvio"
	"github.com/KaramelBytes/datefix-cli/internal/dateparse"
	"github.com/KaramelBytes/datefix-cli/internal/detect"
	"github.com/KaramelBytes/datefix-cli/internal/resolve"
	"github.com/KaramelBytes/datefix-cli/internal/rewrite"
)

// DefaultSampleRows bounds how many data rows feed classification and
// inference when the caller does not override it.
const DefaultSampleRows = 200

// Options is the immutable per-run configuration. A zero Delimiter means
// sniff, a zero SampleRows means DefaultSampleRows, an empty Output derives
// from Input.
type Options struct {
	Input      string
	Output     string
	Encoding   string
	Delimiter  rune
	SampleRows int
	NoPrompt   bool
	Assume     *dateparse.Order
	Force      *dateparse.Order
}

// ColumnResult records what happened to one column.
type ColumnResult struct {
	Index     int
	Name      string
	Verdict   detect.Verdict
	Applied   bool
	Order     dateparse.Order // valid when Applied
	Rewritten int
	Samples   []string // raw non-empty sample values, for prompts and reports
}

// Result summarizes one completed run.
type Result struct {
	Input      string
	OutputPath string
	Rows       int
	Columns    []ColumnResult
	Warnings   []string
	Empty      bool
}

// DateColumns returns the results for columns classified as dates.
func (r *Result) DateColumns() []ColumnResult {
	var out []ColumnResult
	for _, c := range r.Columns {
		if c.Verdict.IsDate {
			out = append(out, c)
		}
	}
	return out
}

// DefaultOutputPath places the output next to the input with an _iso suffix
// before the extension: data.csv -> data_iso.csv.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	if ext == "" {
		return input + "_iso"
	}
	return strings.TrimSuffix(input, ext) + "_iso" + ext
}

// sampleColumns gathers up to sampleRows non-empty trimmed values per column,
// in file order, from the first sampleRows data rows.
func sampleColumns(f *csvio.File, sampleRows int) [][]string {
	samples := make([][]string, len(f.Header))
	limit := sampleRows
	if limit > len(f.Rows) {
		limit = len(f.Rows)
	}
	for _, row := range f.Rows[:limit] {
		for i := range f.Header {
			if i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			if v == "" {
				continue
			}
			if len(samples[i]) < sampleRows {
				samples[i] = append(samples[i], v)
			}
		}
	}
	return samples
}

// Detect runs classification and inference only: no resolution, no prompting,
// no output file. This backs the inspect command.
func Detect(opt Options) (*Result, error) {
	f, err := csvio.ReadFile(opt.Input, opt.Encoding, opt.Delimiter)
	if err != nil {
		return nil, err
	}
	return detectFile(opt, f), nil
}

func detectFile(opt Options, f *csvio.File) *Result {
	res := &Result{Input: opt.Input, Rows: len(f.Rows)}
	if len(f.Header) == 0 {
		res.Empty = true
		return res
	}
	sampleRows := opt.SampleRows
	if sampleRows <= 0 {
		sampleRows = DefaultSampleRows
	}
	samples := sampleColumns(f, sampleRows)
	for i, name := range f.Header {
		res.Columns = append(res.Columns, ColumnResult{
			Index:   i,
			Name:    name,
			Verdict: detect.Classify(samples[i]),
			Samples: samples[i],
		})
	}
	return res
}

// Run executes the full pipeline and writes the rewritten file. Ambiguous
// columns are resolved one at a time, in column order; the prompter (when
// consulted) blocks the pass until the operator answers.
func Run(opt Options, pr resolve.Prompter) (*Result, error) {
	f, err := csvio.ReadFile(opt.Input, opt.Encoding, opt.Delimiter)
	if err != nil {
		return nil, err
	}
	res := detectFile(opt, f)

	out := opt.Output
	if out == "" {
		out = DefaultOutputPath(opt.Input)
	}
	res.OutputPath = out

	if res.Empty {
		res.Warnings = append(res.Warnings, "input appears empty; copying through unchanged")
	}

	cfg := resolve.Config{NoPrompt: opt.NoPrompt, Assume: opt.Assume, Force: opt.Force}
	for i := range res.Columns {
		c := &res.Columns[i]
		dec, err := resolve.Decide(cfg, c.Name, c.Verdict, c.Samples, pr)
		if err != nil {
			return nil, err
		}
		if dec.Warning != "" {
			res.Warnings = append(res.Warnings, dec.Warning)
		}
		if !dec.Apply {
			continue
		}
		c.Applied = true
		c.Order = dec.Order
		c.Rewritten = rewrite.Column(f.Rows, c.Index, dec.Order)
	}

	if err := csvio.WriteFile(out, f, opt.Encoding); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}
	return res, nil
}
