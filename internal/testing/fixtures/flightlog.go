package fixtures

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"flightplots/internal/flags"
	"flightplots/internal/ulog"
)

// Samples is the number of samples per generated topic.
const Samples = 10

const (
	StartTimestamp uint64 = 1_000_000
	LastTimestamp  uint64 = 10_000_000
)

func timestamps() []uint64 {
	ts := make([]uint64, Samples)
	for i := range ts {
		ts[i] = StartTimestamp + uint64(i)*1_000_000
	}
	return ts
}

func ramp(scale float64) []float64 {
	v := make([]float64, Samples)
	for i := range v {
		v[i] = float64(i) * scale
	}
	return v
}

func constant(c float64) []float64 {
	v := make([]float64, Samples)
	for i := range v {
		v[i] = c
	}
	return v
}

// pulse is zero except for one sample.
func pulse(at int) []float64 {
	v := make([]float64, Samples)
	v[at] = 1
	return v
}

func topic(name string, data ulog.Data) *ulog.Topic {
	return &ulog.Topic{Name: name, Timestamps: timestamps(), Data: data}
}

// EventFlags returns an estimator_event_flags topic with every information
// and warning field; the named fields fire once, all others stay zero.
func EventFlags(active ...string) *ulog.Topic {
	fields := append(append([]string(nil), flags.InformationEvents...), flags.WarningEvents...)
	on := map[string]bool{}
	for _, a := range active {
		on[a] = true
	}
	data := ulog.Data{}
	for i, f := range fields {
		if on[f] {
			data[f] = pulse(i % Samples)
		} else {
			data[f] = constant(0)
		}
	}
	return topic("estimator_event_flags", data)
}

// FlightLog returns a log in the current firmware schema, except for
// system_power and tecs_status which carry pre-rename field names.
func FlightLog() *ulog.Log {
	return &ulog.Log{
		ID:             "yj-fixture",
		StartTimestamp: StartTimestamp,
		LastTimestamp:  LastTimestamp,
		MsgInfo:        map[string]string{"sys_name": "PX4"},
		ChangedParameters: []ulog.ChangedParameter{
			{Timestamp: 4_000_000, Name: "MPC_XY_VEL_MAX", Value: 12},
		},
		Topics: []*ulog.Topic{
			topic("vehicle_status", ulog.Data{"nav_state": {0, 0, 2, 2, 2, 3, 3, 3, 18, 18}}),
			topic("distance_sensor", ulog.Data{"current_distance": ramp(0.5)}),
			topic("vehicle_air_data", ulog.Data{"baro_alt_meter": ramp(0.6)}),
			topic("vehicle_magnetometer", ulog.Data{
				"magnetometer_ga[0]": constant(0.2), "magnetometer_ga[1]": constant(0.1), "magnetometer_ga[2]": constant(0.4),
			}),
			topic("estimator_local_position", ulog.Data{"z": ramp(-0.5), "dist_bottom": ramp(0.5)}),
			topic("vehicle_local_position", ulog.Data{
				"x": ramp(1), "y": ramp(2), "z": ramp(-0.5), "vx": constant(1), "vy": constant(2),
			}),
			topic("vehicle_local_position_setpoint", ulog.Data{"z": ramp(-0.5), "vx": constant(1), "vy": constant(2)}),
			topic("vehicle_visual_odometry", ulog.Data{
				"position[0]": ramp(1), "position[1]": ramp(2), "position[2]": ramp(-0.5),
				"velocity[0]": constant(1), "velocity[1]": constant(2), "velocity[2]": constant(0),
				"quality": constant(80),
			}),
			topic("vehicle_angular_velocity", ulog.Data{"xyz[0]": constant(0.1), "xyz[1]": constant(0.2), "xyz[2]": constant(0.3)}),
			topic("manual_control_setpoint", ulog.Data{
				"roll": constant(0), "pitch": constant(0), "yaw": constant(0), "throttle": constant(0.5),
			}),
			topic("system_power", ulog.Data{"voltage5V_v": constant(5.1), "voltage3V3_v": constant(3.3)}),
			topic("tecs_status", ulog.Data{"airspeed_sp": constant(15), "true_airspeed_filtered": constant(14.5)}),
		},
	}
}

// WriteJSONL encodes a log in the JSONL export format.
func WriteJSONL(w io.Writer, l *ulog.Log) error {
	bw := bufio.NewWriter(w)
	enc := func(v any) error {
		b, err := sonic.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := bw.Write(b); err != nil {
			return err
		}
		return bw.WriteByte('\n')
	}
	if err := enc(map[string]any{
		"type":            ulog.RecordInfo,
		"start_timestamp": l.StartTimestamp,
		"last_timestamp":  l.LastTimestamp,
		"msg_info":        l.MsgInfo,
	}); err != nil {
		return err
	}
	for _, t := range l.Topics {
		if err := enc(map[string]any{
			"type":      ulog.RecordTopic,
			"name":      t.Name,
			"multi_id":  t.MultiID,
			"timestamp": t.Timestamps,
			"data":      t.Data,
		}); err != nil {
			return err
		}
	}
	for _, p := range l.ChangedParameters {
		if err := enc(map[string]any{
			"type":      ulog.RecordParam,
			"timestamp": p.Timestamp,
			"name":      p.Name,
			"value":     p.Value,
		}); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes the log as <dir>/<id>.jsonl and returns the path.
func WriteFile(dir string, l *ulog.Log) (string, error) {
	path := filepath.Join(dir, l.ID+".jsonl")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := WriteJSONL(f, l); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
