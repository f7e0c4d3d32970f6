package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trafficdash/internal/record"
)

var (
	replayInput     string
	replaySpeed     float64
	replayPrintOnly bool
	replayJSON      bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a step log file",
	Long:  "replay feeds recorded step rows from a log file back into GreptimeDB or STDOUT at their original pacing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		writer, _, cleanup, err := newWriters(replayPrintOnly, replayJSON, "")
		if err != nil {
			return err
		}
		defer cleanup()
		return record.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to step log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print steps to STDOUT instead of writing to DB")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Print steps as JSON lines instead of colorized output")
	replayCmd.MarkFlagRequired("input")
}
