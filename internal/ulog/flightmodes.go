package ulog

// FlightMode describes a vehicle_status nav_state value.
type FlightMode struct {
	Name  string
	Color string
}

// autoColor is shared by all AUTO modes.
const autoColor = "#6600cc"

// FlightModes maps nav_state values to display names and colors.
var FlightModes = map[int]FlightMode{
	0:  {"Manual", "#cc0000"},
	1:  {"Altitude", "#eecc00"},
	2:  {"Position", "#00cc33"},
	10: {"Acro", "#66cc00"},
	14: {"Offboard", "#00cccc"},
	15: {"Stabilized", "#0033cc"},
	16: {"Rattitude", "#ee9900"},
	3:  {"Mission", autoColor},
	4:  {"Loiter", autoColor},
	5:  {"Return to Land", autoColor},
	6:  {"RC Recovery", autoColor},
	7:  {"Return to groundstation", autoColor},
	8:  {"Land (engine fail)", autoColor},
	9:  {"Land (GPS fail)", autoColor},
	12: {"Descend", autoColor},
	13: {"Terminate", autoColor},
	17: {"Takeoff", autoColor},
	18: {"Land", autoColor},
	19: {"Follow Target", autoColor},
	20: {"Precision Land", autoColor},
	21: {"Orbit", autoColor},
}

// ModeEnd terminates the list returned by FlightModeChanges.
const ModeEnd = -1

// ModeChange is a recorded flight-mode transition.
type ModeChange struct {
	Timestamp uint64
	Mode      int
}

// FlightModeChanges extracts nav_state transitions from vehicle_status. The
// result ends with a ModeEnd entry at the last log timestamp. Logs without
// vehicle_status yield an empty list.
func FlightModeChanges(l *Log) []ModeChange {
	status, err := l.Topic("vehicle_status")
	if err != nil {
		return nil
	}
	states, err := status.Field("nav_state")
	if err != nil {
		return nil
	}
	var changes []ModeChange
	prev := ModeEnd
	for i, v := range states {
		if i >= len(status.Timestamps) {
			break
		}
		mode := int(v)
		if mode == prev {
			continue
		}
		changes = append(changes, ModeChange{Timestamp: status.Timestamps[i], Mode: mode})
		prev = mode
	}
	if len(changes) > 0 {
		changes = append(changes, ModeChange{Timestamp: l.LastTimestamp, Mode: ModeEnd})
	}
	return changes
}
