package sink

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"flightplots/internal/telemetry"
)

// DefaultGreptimePort is the gRPC port used when the endpoint omits one.
const DefaultGreptimePort = 4001

type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes render events to GreptimeDB via the ingester client.
type GreptimeDBWriter struct {
	client greptimeClient
	table  string
}

// NewGreptimeDBWriter connects to endpoint ("host" or "host:port").
func NewGreptimeDBWriter(endpoint, database, tableName string) (*GreptimeDBWriter, error) {
	host, port, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("greptime client: %w", err)
	}
	if tableName == "" {
		tableName = telemetry.RenderEventTableName
	}
	return &GreptimeDBWriter{client: client, table: tableName}, nil
}

func splitEndpoint(endpoint string) (string, int, error) {
	host, p, err := net.SplitHostPort(endpoint)
	if err != nil {
		// no port given
		return endpoint, DefaultGreptimePort, nil
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return "", 0, fmt.Errorf("greptime endpoint %q: invalid port", endpoint)
	}
	return host, port, nil
}

// WriteEvent inserts a single render event.
func (w *GreptimeDBWriter) WriteEvent(row telemetry.RenderEventRow) error {
	return w.WriteEvents([]telemetry.RenderEventRow{row})
}

// WriteEvents inserts multiple render events.
func (w *GreptimeDBWriter) WriteEvents(rows []telemetry.RenderEventRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := w.renderEventTable(rows)
	if err != nil {
		return err
	}
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] Write failed: %v", err)
		return err
	}
	log.Printf("[GreptimeDBWriter] wrote %d rows", len(rows))
	return nil
}

func (w *GreptimeDBWriter) renderEventTable(rows []telemetry.RenderEventRow) (*table.Table, error) {
	tbl, err := table.New(w.table)
	if err != nil {
		return nil, err
	}
	cols := []struct {
		name string
		kind string
		typ  types.ColumnType
	}{
		{"log_id", "tag", types.STRING},
		{"source", "tag", types.STRING},
		{"session_id", "field", types.STRING},
		{"charts_shown", "field", types.INT64},
		{"charts_empty", "field", types.INT64},
		{"charts_skipped", "field", types.INT64},
		{"param_toggle", "field", types.BOOLEAN},
		{"duration_ms", "field", types.FLOAT64},
		{"ts", "time", types.TIMESTAMP_MILLISECOND},
	}
	for _, c := range cols {
		switch c.kind {
		case "tag":
			err = tbl.AddTagColumn(c.name, c.typ)
		case "field":
			err = tbl.AddFieldColumn(c.name, c.typ)
		default:
			err = tbl.AddTimestampColumn(c.name, c.typ)
		}
		if err != nil {
			return nil, err
		}
	}
	for _, r := range rows {
		if err := tbl.AddRow(r.LogID, r.Source, r.SessionID, r.ChartsShown, r.ChartsEmpty,
			r.ChartsSkipped, r.ParamToggle, r.DurationMS, r.Timestamp); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}
