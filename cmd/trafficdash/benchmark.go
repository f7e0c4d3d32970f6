package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"trafficdash/internal/client"
	"trafficdash/internal/config"
	"trafficdash/internal/controller"
	"trafficdash/internal/logging"
	"trafficdash/internal/report"
	"trafficdash/internal/traffic"
)

var (
	benchConfigPath string
	benchSchemaPath string
	benchMap        string
	benchPrintOnly  bool
	benchJSON       bool
	benchLogFile    string
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Run a baseline/with-AI benchmark pair",
	Long:  "benchmark runs the simulation once without and once with AI signal control, then prints a metric comparison.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(benchConfigPath, benchSchemaPath)
		if err != nil {
			return err
		}
		mapID := cfg.DefaultMap
		if benchMap != "" {
			mapID = benchMap
		}
		if !cfg.HasMap(mapID) {
			return fmt.Errorf("unknown map %q", mapID)
		}

		steps, benches, cleanup, err := newWriters(benchPrintOnly, benchJSON, benchLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		svc := client.New(cfg.BackendURL, cfg.RequestTimeout.Std())
		ctrl := controller.New(svc, mapID, cfg.PollInterval.Std(), steps, benches, logging.WithComponent(logging.New(), "benchmark"))

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		for _, kind := range []traffic.RunKind{traffic.RunBaseline, traffic.RunWithAI} {
			log.Printf("[Benchmark] starting %s run on %s", kind, mapID)
			if _, err := ctrl.RunBenchmark(ctx, kind); err != nil {
				return err
			}
		}

		res, err := ctrl.Compare()
		if err != nil {
			return err
		}
		color := term.IsTerminal(int(os.Stdout.Fd()))
		fmt.Print(report.Render(res, color))
		return nil
	},
}

func init() {
	benchmarkCmd.Flags().StringVar(&benchConfigPath, "config", "config/dashboard.yaml", "Path to dashboard configuration YAML")
	benchmarkCmd.Flags().StringVar(&benchSchemaPath, "schema", "schemas/dashboard.cue", "Path to CUE schema file")
	benchmarkCmd.Flags().StringVar(&benchMap, "map", "", "Map to benchmark (defaults to default_map from config)")
	benchmarkCmd.Flags().BoolVar(&benchPrintOnly, "print-only", false, "Print run records to STDOUT instead of writing to DB")
	benchmarkCmd.Flags().BoolVar(&benchJSON, "json", false, "Print run records as JSON lines instead of colorized output")
	benchmarkCmd.Flags().StringVar(&benchLogFile, "log-file", "", "Path to export run records (JSONL)")
}
