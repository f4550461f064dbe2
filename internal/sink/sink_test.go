package sink

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/bytedance/sonic"

	"flightplots/internal/telemetry"
)

func sampleRow() telemetry.RenderEventRow {
	return telemetry.RenderEventRow{
		LogID:         "yj-fixture",
		Source:        telemetry.SourceServe,
		SessionID:     "s1",
		ChartsShown:   9,
		ChartsEmpty:   3,
		ChartsSkipped: 2,
		ParamToggle:   true,
		DurationMS:    12.5,
		Timestamp:     time.Unix(0, 0).UTC(),
	}
}

type recordingWriter struct {
	rows []telemetry.RenderEventRow
	err  error
}

func (r *recordingWriter) WriteEvent(row telemetry.RenderEventRow) error {
	r.rows = append(r.rows, row)
	return r.err
}

func TestJSONStdoutWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONStdoutWriter{out: &buf}
	if err := w.WriteEvent(sampleRow()); err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	if !strings.Contains(buf.String(), `"log_id":"yj-fixture"`) {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestFileWriterAppendsJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	w, err := NewFileWriter(path)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	if err := w.WriteEvents([]telemetry.RenderEventRow{sampleRow(), sampleRow()}); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	lines := 0
	for sc.Scan() {
		var row telemetry.RenderEventRow
		if err := sonic.Unmarshal(sc.Bytes(), &row); err != nil {
			t.Fatalf("line %d: %v", lines, err)
		}
		if row.ChartsShown != 9 {
			t.Fatalf("charts_shown = %d", row.ChartsShown)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("lines = %d, want 2", lines)
	}
}

func TestMultiWriterFansOut(t *testing.T) {
	a := &recordingWriter{}
	b := &recordingWriter{err: errors.New("down")}
	c := &recordingWriter{}
	mw := NewMultiWriter(a, b, c)

	err := mw.WriteEvent(sampleRow())
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(a.rows) != 1 || len(c.rows) != 1 {
		t.Fatalf("rows not fanned out: a=%d c=%d", len(a.rows), len(c.rows))
	}

	if err := NewMultiWriter(a, c).WriteEvents([]telemetry.RenderEventRow{sampleRow(), sampleRow()}); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}
	if len(a.rows) != 3 {
		t.Fatalf("a rows = %d, want 3", len(a.rows))
	}
}

type mockGreptimeClient struct {
	table *table.Table
	err   error
}

func (m *mockGreptimeClient) Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error) {
	if len(tables) > 0 {
		m.table = tables[0]
	}
	return &gpb.GreptimeResponse{}, m.err
}

func TestGreptimeWriterRowShape(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, table: "render_events"}

	if err := w.WriteEvent(sampleRow()); err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	if m.table == nil {
		t.Fatalf("expected table to be captured")
	}
	rows := m.table.GetRows()
	if len(rows.Schema) != 9 {
		t.Fatalf("schema length = %d, want 9", len(rows.Schema))
	}
	if rows.Schema[0].SemanticType != gpb.SemanticType_TAG {
		t.Fatalf("log_id semantic type = %v", rows.Schema[0].SemanticType)
	}
	if rows.Schema[8].SemanticType != gpb.SemanticType_TIMESTAMP {
		t.Fatalf("ts semantic type = %v", rows.Schema[8].SemanticType)
	}
	vals := rows.Rows[0].Values
	if got := vals[0].GetStringValue(); got != "yj-fixture" {
		t.Fatalf("log_id = %s", got)
	}
	if got := vals[3].GetI64Value(); got != 9 {
		t.Fatalf("charts_shown = %d", got)
	}
	if !vals[6].GetBoolValue() {
		t.Fatalf("param_toggle not set")
	}
}

func TestGreptimeWriterPropagatesError(t *testing.T) {
	m := &mockGreptimeClient{err: errors.New("unavailable")}
	w := &GreptimeDBWriter{client: m, table: "render_events"}
	if err := w.WriteEvent(sampleRow()); err == nil {
		t.Fatalf("expected error")
	}
	if err := w.WriteEvents(nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
}

func TestSplitEndpoint(t *testing.T) {
	host, port, err := splitEndpoint("db.local:4101")
	if err != nil || host != "db.local" || port != 4101 {
		t.Fatalf("got %s %d %v", host, port, err)
	}
	host, port, err = splitEndpoint("db.local")
	if err != nil || host != "db.local" || port != DefaultGreptimePort {
		t.Fatalf("got %s %d %v", host, port, err)
	}
	if _, _, err := splitEndpoint("db.local:abc"); err == nil {
		t.Fatalf("expected invalid port error")
	}
}
