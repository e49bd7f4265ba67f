package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/datefix-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	insOutput    string
	insEncoding  string
	insDelimiter string
	insSample    int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.csv>",
	Short: "Report date-column verdicts without rewriting anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := pipeline.Options{
			Input:      args[0],
			Encoding:   insEncoding,
			SampleRows: insSample,
		}
		if cfg != nil {
			f := cmd.Flags()
			if !f.Changed("encoding") && opt.Encoding == "" {
				opt.Encoding = cfg.Encoding
			}
			if !f.Changed("sample-rows") && opt.SampleRows == 0 {
				opt.SampleRows = cfg.SampleRows
			}
		}
		var err error
		if opt.Delimiter, err = parseDelimiterFlag(insDelimiter); err != nil {
			return err
		}
		res, err := pipeline.Detect(opt)
		if err != nil {
			return err
		}
		md := res.Markdown()
		if insOutput != "" {
			if err := os.WriteFile(insOutput, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("✓ Wrote report to %s\n", insOutput)
			return nil
		}
		fmt.Print(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&insOutput, "output", "o", "", "optional path to write the report")
	inspectCmd.Flags().StringVar(&insEncoding, "encoding", "", "text encoding for reading (default: utf-8)")
	inspectCmd.Flags().StringVar(&insDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	inspectCmd.Flags().IntVar(&insSample, "sample-rows", 0, "rows to sample for detection (default: 200)")
}
