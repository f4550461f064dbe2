// Package schema maps topics and fields of older firmware logs onto the
// names the chart definitions use.
package schema

import (
	"flightplots/internal/ulog"
)

// Feature is a schema property detected from the topics of a log.
type Feature uint

const (
	// FeatureAirData: vehicle_air_data or vehicle_magnetometer was logged.
	FeatureAirData Feature = 1 << iota
	// FeatureAngularVelocity: vehicle_angular_velocity was logged.
	FeatureAngularVelocity
	// FeatureManualSwitches: manual_control_switches was logged.
	FeatureManualSwitches
	// FeatureManualThrottle: manual_control_setpoint has a throttle field or is absent.
	FeatureManualThrottle
	// FeatureDynamicAllocation: actuator_motors or actuator_servos was logged.
	FeatureDynamicAllocation
	// FeatureOdometryVectors: vehicle_visual_odometry uses position[i]/velocity[i].
	FeatureOdometryVectors
)

// Has reports whether all bits of f are set.
func (fs Feature) Has(f Feature) bool { return fs&f == f }

// Aliases holds the canonical topic and field names resolved for one log.
type Aliases struct {
	BaroAltTopic      string
	MagnetometerTopic string

	RateEstimatedTopic   string
	RateGroundTruthTopic string
	RateFields           [3]string

	ManualSwitchesTopic string
	// ManualControls lists roll, pitch, yaw and throttle in that order.
	ManualControls [4]string
	ThrottleRange  string

	DynamicControlAlloc bool

	OdometryPosition [3]string
	OdometryVelocity [3]string

	Features Feature
}

type rule struct {
	feature Feature
	modern  func(*Aliases)
	legacy  func(*Aliases)
}

// rules is evaluated in order; each row picks one alias fragment depending on
// whether its feature was detected.
var rules = []rule{
	{
		feature: FeatureAirData,
		modern: func(a *Aliases) {
			a.BaroAltTopic = "vehicle_air_data"
			a.MagnetometerTopic = "vehicle_magnetometer"
		},
		legacy: func(a *Aliases) {
			a.BaroAltTopic = "sensor_combined"
			a.MagnetometerTopic = "sensor_combined"
		},
	},
	{
		feature: FeatureAngularVelocity,
		modern: func(a *Aliases) {
			a.RateEstimatedTopic = "vehicle_angular_velocity"
			a.RateGroundTruthTopic = "vehicle_angular_velocity_groundtruth"
			a.RateFields = [3]string{"xyz[0]", "xyz[1]", "xyz[2]"}
		},
		legacy: func(a *Aliases) {
			a.RateEstimatedTopic = "vehicle_attitude"
			a.RateGroundTruthTopic = "vehicle_attitude_groundtruth"
			a.RateFields = [3]string{"rollspeed", "pitchspeed", "yawspeed"}
		},
	},
	{
		feature: FeatureManualSwitches,
		modern:  func(a *Aliases) { a.ManualSwitchesTopic = "manual_control_switches" },
		legacy:  func(a *Aliases) { a.ManualSwitchesTopic = "manual_control_setpoint" },
	},
	{
		feature: FeatureManualThrottle,
		modern: func(a *Aliases) {
			a.ManualControls = [4]string{"roll", "pitch", "yaw", "throttle"}
			a.ThrottleRange = "[-1, 1]"
		},
		legacy: func(a *Aliases) {
			a.ManualControls = [4]string{"y", "x", "r", "z"}
			a.ThrottleRange = "[0, 1]"
		},
	},
	{
		feature: FeatureDynamicAllocation,
		modern:  func(a *Aliases) { a.DynamicControlAlloc = true },
		legacy:  func(a *Aliases) { a.DynamicControlAlloc = false },
	},
	{
		feature: FeatureOdometryVectors,
		modern: func(a *Aliases) {
			a.OdometryPosition = [3]string{"position[0]", "position[1]", "position[2]"}
			a.OdometryVelocity = [3]string{"velocity[0]", "velocity[1]", "velocity[2]"}
		},
		legacy: func(a *Aliases) {
			a.OdometryPosition = [3]string{"x", "y", "z"}
			a.OdometryVelocity = [3]string{"vx", "vy", "vz"}
		},
	},
}

// Detect inspects the topics of a log and returns the set of schema features.
func Detect(l *ulog.Log) Feature {
	var fs Feature
	if l.HasTopic("vehicle_air_data", "vehicle_magnetometer") {
		fs |= FeatureAirData
	}
	if l.HasTopic("vehicle_angular_velocity") {
		fs |= FeatureAngularVelocity
	}
	if l.HasTopic("manual_control_switches") {
		fs |= FeatureManualSwitches
	}
	if mc, err := l.Topic("manual_control_setpoint"); err != nil || mc.Has("throttle") {
		fs |= FeatureManualThrottle
	}
	if l.HasTopic("actuator_motors", "actuator_servos") {
		fs |= FeatureDynamicAllocation
	}
	if odom, err := l.Topic("vehicle_visual_odometry"); err == nil && odom.Has("position[0]") {
		fs |= FeatureOdometryVectors
	}
	return fs
}

// ForFeatures builds the aliases for a detected feature set.
func ForFeatures(fs Feature) Aliases {
	a := Aliases{Features: fs}
	for _, r := range rules {
		if fs.Has(r.feature) {
			r.modern(&a)
		} else {
			r.legacy(&a)
		}
	}
	return a
}

// Resolve normalizes renamed fields in place and returns the aliases to use
// for the log. Topics absent from the log are not an error.
func Resolve(l *ulog.Log) Aliases {
	Normalize(l)
	return ForFeatures(Detect(l))
}
