package ulog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"flightplots/internal/logging"
)

// Record types of the JSONL export.
const (
	RecordInfo  = "info"
	RecordTopic = "topic"
	RecordParam = "param"
)

type envelope struct {
	Type string `json:"type"`
}

type infoRecord struct {
	StartTimestamp uint64            `json:"start_timestamp"`
	LastTimestamp  uint64            `json:"last_timestamp"`
	MsgInfo        map[string]string `json:"msg_info"`
}

// Load reads a JSONL log export. Lines that are not valid JSON or carry an
// unknown record type are skipped.
func Load(ctx context.Context, r io.Reader, id string) (*Log, error) {
	logger := logging.FromContext(ctx)
	l := &Log{ID: id, MsgInfo: map[string]string{}}
	var haveInfo bool

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var env envelope
		if err := sonic.Unmarshal(line, &env); err != nil {
			logger.Debug("skip invalid line", "log", id, "line", lineNo, "err", err)
			continue
		}
		switch env.Type {
		case RecordInfo:
			var info infoRecord
			if err := sonic.Unmarshal(line, &info); err != nil {
				return nil, fmt.Errorf("line %d: decode info: %w", lineNo, err)
			}
			l.StartTimestamp = info.StartTimestamp
			l.LastTimestamp = info.LastTimestamp
			for k, v := range info.MsgInfo {
				l.MsgInfo[k] = v
			}
			haveInfo = true
		case RecordTopic:
			var t Topic
			if err := sonic.Unmarshal(line, &t); err != nil {
				return nil, fmt.Errorf("line %d: decode topic: %w", lineNo, err)
			}
			if t.Data == nil {
				t.Data = Data{}
			}
			l.Topics = append(l.Topics, &t)
		case RecordParam:
			var p ChangedParameter
			if err := sonic.Unmarshal(line, &p); err != nil {
				return nil, fmt.Errorf("line %d: decode param: %w", lineNo, err)
			}
			l.ChangedParameters = append(l.ChangedParameters, p)
		default:
			logger.Debug("skip unknown record", "log", id, "line", lineNo, "type", env.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan log %s: %w", id, err)
	}
	if len(l.Topics) == 0 {
		return nil, fmt.Errorf("log %s: no topics", id)
	}
	if !haveInfo {
		l.StartTimestamp, l.LastTimestamp = timestampBounds(l.Topics)
	}
	return l, nil
}

// LoadFile opens a JSONL export. The log id is the file name without extension.
func LoadFile(ctx context.Context, path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(ctx, f, IDFromPath(path))
}

// IDFromPath derives a log id from a file path.
func IDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func timestampBounds(topics []*Topic) (uint64, uint64) {
	var start, last uint64
	first := true
	for _, t := range topics {
		if len(t.Timestamps) == 0 {
			continue
		}
		lo, hi := t.Timestamps[0], t.Timestamps[len(t.Timestamps)-1]
		if first || lo < start {
			start = lo
		}
		if first || hi > last {
			last = hi
		}
		first = false
	}
	return start, last
}
