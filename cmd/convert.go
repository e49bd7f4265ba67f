package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/datefix-cli/internal/dateparse"
	"github.com/KaramelBytes/datefix-cli/internal/pipeline"
	"github.com/KaramelBytes/datefix-cli/internal/resolve"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	cvOutput    string
	cvEncoding  string
	cvDelimiter string
	cvSample    int
	cvNoPrompt  bool
	cvAssume    string
	cvForce     string
)

// stdinIsTerminal is swapped out in tests to exercise the non-terminal path.
var stdinIsTerminal = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// convertCmd is an explicit alias for the root behavior, so both
// `datefix data.csv` and `datefix convert data.csv` work.
var convertCmd = &cobra.Command{
	Use:   "convert <input.csv>",
	Short: "Rewrite date columns to ISO-8601 and write the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func addConvertFlags(f *pflag.FlagSet) {
	f.StringVarP(&cvOutput, "output", "o", "", "output path (default: <input>_iso.csv)")
	f.StringVar(&cvEncoding, "encoding", "", "text encoding for reading and writing (default: utf-8)")
	f.StringVar(&cvDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	f.IntVar(&cvSample, "sample-rows", 0, "rows to sample for detection (default: 200)")
	f.BoolVar(&cvNoPrompt, "no-prompt", false, "never prompt; ambiguous columns use --assume or are left unchanged")
	f.StringVar(&cvAssume, "assume", "", "order for ambiguous columns under --no-prompt: DMY|MDY|YMD")
	f.StringVar(&cvForce, "force-order", "", "force this order on every detected date column: DMY|MDY|YMD")
}

func init() {
	addConvertFlags(rootCmd.Flags())
	addConvertFlags(convertCmd.Flags())
	rootCmd.AddCommand(convertCmd)
}

func parseOrderFlag(name, value string) (*dateparse.Order, error) {
	if value == "" {
		return nil, nil
	}
	o, ok := dateparse.ParseOrder(value)
	if !ok {
		return nil, fmt.Errorf("invalid --%s value %q (use DMY, MDY, or YMD)", name, value)
	}
	return &o, nil
}

func parseDelimiterFlag(value string) (rune, error) {
	switch value {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	}
	return 0, fmt.Errorf("unsupported --delimiter: %s", value)
}

func runConvert(cmd *cobra.Command, args []string) error {
	opt := pipeline.Options{
		Input:      args[0],
		Output:     cvOutput,
		Encoding:   cvEncoding,
		SampleRows: cvSample,
		NoPrompt:   cvNoPrompt,
	}

	// Config defaults fill in flags the user did not set.
	if cfg != nil {
		f := cmd.Flags()
		if !f.Changed("encoding") && opt.Encoding == "" {
			opt.Encoding = cfg.Encoding
		}
		if !f.Changed("sample-rows") && opt.SampleRows == 0 {
			opt.SampleRows = cfg.SampleRows
		}
		if !f.Changed("no-prompt") && cfg.NoPrompt {
			opt.NoPrompt = true
		}
		if !f.Changed("assume") && cvAssume == "" {
			cvAssume = cfg.AssumeOrder
		}
	}

	// Configuration errors are surfaced before any processing begins.
	var err error
	if opt.Assume, err = parseOrderFlag("assume", cvAssume); err != nil {
		return err
	}
	if opt.Force, err = parseOrderFlag("force-order", cvForce); err != nil {
		return err
	}
	if opt.Delimiter, err = parseDelimiterFlag(cvDelimiter); err != nil {
		return err
	}
	if opt.Force != nil && opt.Assume != nil {
		fmt.Fprintln(os.Stderr, "⚠ Warning: --force-order takes precedence; --assume is ignored")
	}

	// A detached stdin cannot answer prompts. Degrade instead of hanging.
	if !opt.NoPrompt && !stdinIsTerminal() {
		fmt.Fprintln(os.Stderr, "⚠ Warning: stdin is not a terminal; running as if --no-prompt were set")
		opt.NoPrompt = true
	}

	debugf("options: %+v", opt)
	res, err := pipeline.Run(opt, resolve.NewTerminalPrompter(os.Stdin, os.Stdout))
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
	}
	if cols := res.DateColumns(); len(cols) == 0 {
		fmt.Println("No date-like columns detected. Copying input to output unchanged.")
	} else {
		fmt.Println("Date column decisions:")
		for _, c := range cols {
			if c.Applied {
				fmt.Printf("  - %s: %s (%d cells rewritten)\n", c.Name, c.Order, c.Rewritten)
			} else {
				fmt.Printf("  - %s: skipped\n", c.Name)
			}
		}
	}
	fmt.Printf("✓ Wrote %s\n", res.OutputPath)
	return nil
}
