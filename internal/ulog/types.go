// Parsed flight log model
package ulog

import (
	"errors"
	"fmt"
)

var (
	// ErrTopicNotFound is returned when a log carries no topic with the requested name/instance.
	ErrTopicNotFound = errors.New("topic not found")
	// ErrFieldNotFound is returned when a topic has no samples for the requested field.
	ErrFieldNotFound = errors.New("field not found")
)

// Data maps field names to sample arrays. All arrays of one topic share the
// topic's timestamps.
type Data map[string][]float64

// Topic is a named stream of timestamped samples.
type Topic struct {
	Name       string   `json:"name"`
	MultiID    int      `json:"multi_id"`
	Timestamps []uint64 `json:"timestamp"`
	Data       Data     `json:"data"`
}

// Has reports whether the topic carries the named field.
func (t *Topic) Has(field string) bool {
	_, ok := t.Data[field]
	return ok
}

// Field returns the samples of a field or ErrFieldNotFound.
func (t *Topic) Field(name string) ([]float64, error) {
	v, ok := t.Data[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", t.Name, name, ErrFieldNotFound)
	}
	return v, nil
}

// Rename moves samples from an old field name to a new one. It returns false
// when the old name is absent.
func (t *Topic) Rename(from, to string) bool {
	v, ok := t.Data[from]
	if !ok {
		return false
	}
	delete(t.Data, from)
	t.Data[to] = v
	return true
}

// ChangedParameter is a configuration value edited during the session.
type ChangedParameter struct {
	Timestamp uint64  `json:"timestamp"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
}

// Log is a parsed flight log.
type Log struct {
	ID                string             `json:"id"`
	Topics            []*Topic           `json:"topics"`
	StartTimestamp    uint64             `json:"start_timestamp"`
	LastTimestamp     uint64             `json:"last_timestamp"`
	ChangedParameters []ChangedParameter `json:"changed_parameters"`
	MsgInfo           map[string]string  `json:"msg_info"`
}

// Topic returns the first instance of the named topic.
func (l *Log) Topic(name string) (*Topic, error) {
	return l.TopicInstance(name, 0)
}

// TopicInstance returns the topic with the given name and multi instance id.
func (l *Log) TopicInstance(name string, multiID int) (*Topic, error) {
	for _, t := range l.Topics {
		if t.Name == name && t.MultiID == multiID {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%s[%d]: %w", name, multiID, ErrTopicNotFound)
}

// HasTopic reports whether any instance of a topic was logged.
func (l *Log) HasTopic(names ...string) bool {
	for _, t := range l.Topics {
		for _, n := range names {
			if t.Name == n {
				return true
			}
		}
	}
	return false
}

// IsReplay reports whether the log was produced by a replay run.
func (l *Log) IsReplay() bool {
	_, ok := l.MsgInfo["replay"]
	return ok
}

// Duration returns the logged span in microseconds.
func (l *Log) Duration() uint64 {
	if l.LastTimestamp < l.StartTimestamp {
		return 0
	}
	return l.LastTimestamp - l.StartTimestamp
}
