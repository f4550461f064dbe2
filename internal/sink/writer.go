// Package sink writes render events to stdout, JSONL files and GreptimeDB.
package sink

import "flightplots/internal/telemetry"

// EventWriter persists render events.
type EventWriter interface {
	WriteEvent(row telemetry.RenderEventRow) error
}

// batchWriter is implemented by writers that can persist several rows at once.
type batchWriter interface {
	WriteEvents(rows []telemetry.RenderEventRow) error
}

// Discard drops every event.
type Discard struct{}

func (Discard) WriteEvent(telemetry.RenderEventRow) error { return nil }
