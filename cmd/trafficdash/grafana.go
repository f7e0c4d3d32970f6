package main

import (
	"github.com/spf13/cobra"

	"trafficdash/internal/dashboard"
)

var grafanaOutDir string

var grafanaCmd = &cobra.Command{
	Use:   "grafana",
	Short: "Render Grafana dashboards for the recorded tables",
	Long:  "grafana renders the bundled dashboard templates against the configured GreptimeDB datasource.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboard.RenderGrafana(grafanaOutDir)
	},
}

func init() {
	grafanaCmd.Flags().StringVar(&grafanaOutDir, "out", "build", "Output directory for rendered dashboards")
}
