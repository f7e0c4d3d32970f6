package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trafficdash",
	Short: "Traffic control dashboard toolkit",
	Long:  "Trafficdash drives a traffic-simulation backend: live session dashboard, AI benchmark runs, and step log replay.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(benchmarkCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(grafanaCmd)
}
