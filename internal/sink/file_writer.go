package sink

import (
	"os"
	"sync"

	"github.com/bytedance/sonic"

	"flightplots/internal/telemetry"
)

// FileWriter appends render events to a JSONL file.
type FileWriter struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileWriter opens path for appending, creating it if needed.
func NewFileWriter(path string) (*FileWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileWriter{file: f}, nil
}

// WriteEvent logs a single render event.
func (f *FileWriter) WriteEvent(row telemetry.RenderEventRow) error {
	return f.WriteEvents([]telemetry.RenderEventRow{row})
}

// WriteEvents logs multiple render events.
func (f *FileWriter) WriteEvents(rows []telemetry.RenderEventRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		data, err := sonic.Marshal(r)
		if err != nil {
			return err
		}
		if _, err := f.file.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying file.
func (f *FileWriter) Close() error {
	return f.file.Close()
}
