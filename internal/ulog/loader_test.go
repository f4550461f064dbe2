package ulog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleLog = `{"type":"info","start_timestamp":1000,"last_timestamp":9000,"msg_info":{"sys_name":"PX4"}}
{"type":"topic","name":"vehicle_status","multi_id":0,"timestamp":[1000,2000,3000,4000],"data":{"nav_state":[0,0,2,3]}}
not json at all
{"type":"param","timestamp":2500,"name":"MPC_XY_VEL_MAX","value":12}
{"type":"mystery","foo":1}
{"type":"topic","name":"distance_sensor","multi_id":1,"timestamp":[1500],"data":{"current_distance":[1.5]}}
`

func TestLoad(t *testing.T) {
	l, err := Load(context.Background(), strings.NewReader(sampleLog), "flight-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.ID != "flight-1" {
		t.Fatalf("id = %q", l.ID)
	}
	if l.StartTimestamp != 1000 || l.LastTimestamp != 9000 {
		t.Fatalf("timestamps = %d..%d", l.StartTimestamp, l.LastTimestamp)
	}
	if len(l.Topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(l.Topics))
	}
	if len(l.ChangedParameters) != 1 || l.ChangedParameters[0].Name != "MPC_XY_VEL_MAX" {
		t.Fatalf("unexpected params: %+v", l.ChangedParameters)
	}
	if l.MsgInfo["sys_name"] != "PX4" {
		t.Fatalf("msg info not loaded: %+v", l.MsgInfo)
	}
	if l.IsReplay() {
		t.Fatalf("log should not be a replay")
	}
	if _, err := l.TopicInstance("distance_sensor", 1); err != nil {
		t.Fatalf("distance_sensor[1]: %v", err)
	}
}

func TestLoadDerivesBoundsWithoutInfo(t *testing.T) {
	src := `{"type":"topic","name":"a","timestamp":[50,60],"data":{"x":[1,2]}}
{"type":"topic","name":"b","timestamp":[20,90],"data":{"y":[1,2]}}`
	l, err := Load(context.Background(), strings.NewReader(src), "x")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.StartTimestamp != 20 || l.LastTimestamp != 90 {
		t.Fatalf("bounds = %d..%d, want 20..90", l.StartTimestamp, l.LastTimestamp)
	}
}

func TestLoadWithoutTopicsFails(t *testing.T) {
	if _, err := Load(context.Background(), strings.NewReader(`{"type":"info"}`), "empty"); err == nil {
		t.Fatalf("expected error for log without topics")
	}
}

func TestLoadFileUsesStemAsID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yj-0042.jsonl")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	l, err := LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if l.ID != "yj-0042" {
		t.Fatalf("id = %q, want yj-0042", l.ID)
	}
}

func TestTopicAccessErrors(t *testing.T) {
	l := &Log{Topics: []*Topic{{Name: "a", Data: Data{"x": {1}}}}}
	if _, err := l.Topic("b"); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
	a, _ := l.Topic("a")
	if _, err := a.Field("y"); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestIsReplay(t *testing.T) {
	l := &Log{MsgInfo: map[string]string{"replay": "log.ulg"}}
	if !l.IsReplay() {
		t.Fatalf("expected replay")
	}
}
