package record

import (
	"context"
	"log"
	"net"
	"strconv"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes step and benchmark rows to GreptimeDB via the
// ingester client.
type GreptimeDBWriter struct {
	client     greptimeClient
	stepTable  string
	benchTable string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer. The endpoint is
// host:port of the gRPC ingest listener.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		host = endpoint
		portStr = "4001"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{
		client:     client,
		stepTable:  StepTableName,
		benchTable: BenchmarkTableName,
	}, nil
}

// WriteStep inserts a single step row.
func (w *GreptimeDBWriter) WriteStep(row StepRow) error {
	return w.WriteSteps([]StepRow{row})
}

// WriteSteps inserts multiple step rows.
func (w *GreptimeDBWriter) WriteSteps(rows []StepRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.stepTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("session_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("map_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("ai_enabled", types.BOOLEAN); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("vehicles_we", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("vehicles_ns", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("phase", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(r.SessionID, r.MapID, r.AIEnabled,
			int64(r.VehiclesWE), int64(r.VehiclesNS), int64(r.Phase), r.Timestamp); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] step write failed: %v", err)
		return err
	}
	return nil
}

// WriteBenchmark inserts a single benchmark row.
func (w *GreptimeDBWriter) WriteBenchmark(row BenchmarkRow) error {
	tbl, err := table.New(w.benchTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("run_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("map_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("kind", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("ai_mode", types.BOOLEAN); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("avg_travel_time", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("avg_waiting_time", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("vehicles_completed", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("avg_ev_wait_time", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	if err := tbl.AddRow(row.RunID, row.MapID, row.Kind, row.AIMode,
		row.AvgTravelTime, row.AvgWaitingTime, int64(row.VehiclesCompleted),
		row.AvgEVWaitTime, row.Timestamp); err != nil {
		return err
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] benchmark write failed: %v", err)
		return err
	}
	return nil
}
