package main

import (
	"log"

	"flightplots/internal/config"
	"flightplots/internal/sink"
)

// newEventWriter sets up the render event writer from the events config.
// It returns the writer and a cleanup function to close any resources.
func newEventWriter(ec config.EventsConfig) (sink.EventWriter, func(), error) {
	cleanup := func() {}

	writer, err := baseEventWriter(ec)
	if err != nil {
		return nil, nil, err
	}
	if ec.File == "" {
		return writer, cleanup, nil
	}

	fw, err := sink.NewFileWriter(ec.File)
	if err != nil {
		return nil, nil, err
	}
	cleanup = func() { fw.Close() }
	return sink.NewMultiWriter(writer, fw), cleanup, nil
}

// baseEventWriter chooses stdout or GreptimeDB.
func baseEventWriter(ec config.EventsConfig) (sink.EventWriter, error) {
	if ec.PrintOnly || ec.GreptimeEndpoint == "" {
		log.Println("[Main] Print-only mode: render events will be printed to STDOUT")
		return sink.NewJSONStdoutWriter(), nil
	}
	return sink.NewGreptimeDBWriter(ec.GreptimeEndpoint, ec.GreptimeDatabase, ec.Table)
}
