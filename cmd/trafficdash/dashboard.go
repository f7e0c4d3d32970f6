package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trafficdash/internal/client"
	"trafficdash/internal/config"
	"trafficdash/internal/controller"
	"trafficdash/internal/dashboard"
	"trafficdash/internal/logging"
	"trafficdash/internal/record"
)

var (
	dashConfigPath string
	dashSchemaPath string
	dashMap        string
	dashLogFile    string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the interactive session dashboard",
	Long:  "dashboard opens a live TUI driving an interactive simulation session with telemetry polling, AI toggle, and benchmark runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(dashConfigPath, dashSchemaPath)
		if err != nil {
			return err
		}
		mapID := cfg.DefaultMap
		if dashMap != "" {
			mapID = dashMap
		}
		if !cfg.HasMap(mapID) {
			return fmt.Errorf("unknown map %q", mapID)
		}

		sinkSteps, sinkBenches, cleanup, err := newSinkWriters(dashLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		w := dashboard.NewTUIWriter(cfg)
		defer w.Close()

		var steps record.StepWriter = w
		var benches record.BenchmarkWriter = w
		if sinkSteps != nil {
			mw := record.NewMultiWriter(
				[]record.StepWriter{w, sinkSteps},
				[]record.BenchmarkWriter{w, sinkBenches},
			)
			steps, benches = mw, mw
		}

		// The TUI owns STDOUT; structured logs either go to a sibling of
		// the export file or are dropped.
		logger := logging.Discard()
		if dashLogFile != "" {
			lf, err := os.Create(dashLogFile + ".log")
			if err != nil {
				return err
			}
			defer lf.Close()
			logger = logging.NewWriter(lf)
		}

		svc := client.New(cfg.BackendURL, cfg.RequestTimeout.Std())
		ctrl := controller.New(svc, mapID, cfg.PollInterval.Std(), steps, benches, logging.WithComponent(logger, "controller"))
		w.SetController(ctrl)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		_ = ctrl.Stop()
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashConfigPath, "config", "config/dashboard.yaml", "Path to dashboard configuration YAML")
	dashboardCmd.Flags().StringVar(&dashSchemaPath, "schema", "schemas/dashboard.cue", "Path to CUE schema file")
	dashboardCmd.Flags().StringVar(&dashMap, "map", "", "Map to control (defaults to default_map from config)")
	dashboardCmd.Flags().StringVar(&dashLogFile, "log-file", "", "Path to export step/benchmark logs (JSONL)")
}
