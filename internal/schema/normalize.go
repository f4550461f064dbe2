package schema

import "flightplots/internal/ulog"

type rename struct{ from, to string }

// fieldRenames lists fields that changed name between firmware releases.
var fieldRenames = map[string][]rename{
	"system_power": {
		{"voltage5V_v", "voltage5v_v"},    // prior to PX4/Firmware 213aa93
		{"voltage3V3_v", "sensors3v3[0]"}, // prior to PX4/Firmware 213aa93
		{"voltage3v3_v", "sensors3v3[0]"},
	},
	"tecs_status": {
		{"airspeed_sp", "true_airspeed_sp"}, // prior to PX4-Autopilot#16585
	},
}

// Normalize rewrites old field names of known topics to their current names.
// It returns the number of renamed fields.
func Normalize(l *ulog.Log) int {
	n := 0
	for _, t := range l.Topics {
		for _, r := range fieldRenames[t.Name] {
			if t.Rename(r.from, r.to) {
				n++
			}
		}
	}
	return n
}
