package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"

	"flightplots/internal/telemetry"
)

// JSONStdoutWriter prints render events as JSON to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// WriteEvent outputs a render event in JSON format.
func (w *JSONStdoutWriter) WriteEvent(row telemetry.RenderEventRow) error {
	data, err := sonic.Marshal(row)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}
