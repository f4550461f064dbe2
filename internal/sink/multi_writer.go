package sink

import (
	"errors"

	"flightplots/internal/telemetry"
)

// MultiWriter fans render events out to multiple writers.
type MultiWriter struct {
	writers []EventWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(writers ...EventWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteEvent sends a row to all writers. Every writer is attempted; the
// errors are joined.
func (mw *MultiWriter) WriteEvent(row telemetry.RenderEventRow) error {
	var errs []error
	for _, w := range mw.writers {
		if err := w.WriteEvent(row); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteEvents sends multiple rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteEvents(rows []telemetry.RenderEventRow) error {
	var errs []error
	for _, w := range mw.writers {
		if bw, ok := w.(batchWriter); ok {
			if err := bw.WriteEvents(rows); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteEvent(r); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
