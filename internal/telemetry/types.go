// Render event rows with greptime tags
package telemetry

import (
	"os"
	"time"
)

// RenderEventRow records one chart page build.
type RenderEventRow struct {
	LogID         string    `json:"log_id"`         // TAG
	Source        string    `json:"source"`         // TAG
	SessionID     string    `json:"session_id"`     // FIELD
	ChartsShown   int64     `json:"charts_shown"`   // FIELD
	ChartsEmpty   int64     `json:"charts_empty"`   // FIELD
	ChartsSkipped int64     `json:"charts_skipped"` // FIELD
	ParamToggle   bool      `json:"param_toggle"`   // FIELD
	DurationMS    float64   `json:"duration_ms"`    // FIELD
	Timestamp     time.Time `json:"ts"`             // TIME INDEX
}

// Render event sources.
const (
	SourceServe  = "serve"
	SourceRender = "render"
)

// RenderEventTableName holds the table name used when writing to GreptimeDB.
// It defaults to "flightplots_render_events" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var RenderEventTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "flightplots_render_events"
}()

func (RenderEventRow) TableName() string {
	return RenderEventTableName
}
