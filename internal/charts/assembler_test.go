package charts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightplots/internal/config"
	"flightplots/internal/plot"
	"flightplots/internal/schema"
	"flightplots/internal/testing/fixtures"
	"flightplots/internal/ui"
	"flightplots/internal/ulog"
)

func build(t *testing.T, l *ulog.Log) Result {
	t.Helper()
	return Build(context.Background(), l, schema.Resolve(l), config.Default())
}

func byTitle(res Result) map[string]*plot.Chart {
	out := map[string]*plot.Chart{}
	for _, c := range res.Charts {
		if c != nil {
			out[c.Title] = c
		}
	}
	return out
}

func labels(c *plot.Chart) []string {
	var out []string
	for _, s := range c.Series {
		out = append(out, s.Label)
	}
	return out
}

func TestBuildFixtureLog(t *testing.T) {
	res := build(t, fixtures.FlightLog())

	require.NotEmpty(t, res.Charts)
	assert.Nil(t, res.Charts[0], "first entry reserves the parameter toggle slot")
	assert.True(t, res.HasToggleSlot())
	assert.Equal(t, 9, res.Shown())

	charts := byTitle(res)
	alt := charts["Altitudes"]
	require.NotNil(t, alt)
	assert.Equal(t, []string{
		"dist_sensor", "baro", "estimator_z", "estimator_dist_bottom",
		"local_pos_z", "local_pos_setpoint_z", "visual_z",
	}, labels(alt))
	assert.Equal(t, "[m]", alt.YAxisLabel)
	assert.NotNil(t, alt.ParamLabel)
	assert.NotEmpty(t, alt.FlightModes)

	assert.Len(t, charts["X&Y Velocities"].Series, 6)
	assert.Len(t, charts["VIO Quality and Number of Features"].Series, 1)
	assert.Len(t, charts["Angular Rates"].Series, 3)
	assert.Contains(t, labels(charts["Manual Control Inputs (Radio or Joystick)"]), "Throttle [-1, 1]")
	assert.Equal(t, []string{"5 V", "3.3 V"}, labels(charts["Power"]))
	assert.Equal(t, "true_airspeed_sp", charts["TECS Airspeed"].Series[0].Field)

	assert.ElementsMatch(t, []string{"Optical Flow and Body Velocity", "Manual Control Switches", "Actuator Controls"}, res.Empty)
}

func TestBuildSkipsEventChartsWithoutTopic(t *testing.T) {
	res := build(t, fixtures.FlightLog())

	require.Len(t, res.Skipped, 2)
	assert.Equal(t, "Estimator Information Events", res.Skipped[0].Title)
	assert.Equal(t, "Estimator Warning Events", res.Skipped[1].Title)
	assert.True(t, errors.Is(res.Skipped[0].Err, ulog.ErrTopicNotFound))
	assert.NotContains(t, byTitle(res), "Estimator Warning Events")
}

func TestBuildDropsChartWithoutSamples(t *testing.T) {
	l := fixtures.FlightLog()
	l.Topics = append(l.Topics, &ulog.Topic{
		Name:       "estimator_optical_flow_vel",
		Timestamps: []uint64{},
		Data:       ulog.Data{"vel_body[0]": {}, "vel_body[1]": {}},
	})
	res := build(t, l)

	assert.Equal(t, 9, res.Shown())
	assert.Contains(t, res.Empty, "Optical Flow and Body Velocity")
	assert.NotContains(t, byTitle(res), "Optical Flow and Body Velocity")
	for _, n := range ui.Finalize(res.Charts, 840).Nav {
		assert.NotEqual(t, "Optical Flow and Body Velocity", n.Title)
	}
}

func TestBuildGuardedSkipsAreExpected(t *testing.T) {
	res := build(t, fixtures.FlightLog())

	require.Len(t, res.Skipped, 2)
	for _, s := range res.Skipped {
		assert.False(t, s.Unexpected, s.Title)
	}
}

func TestBuildFlagsUnguardedFailure(t *testing.T) {
	saved := definitions
	t.Cleanup(func() { definitions = saved })
	boom := errors.New("boom")
	definitions = []definition{
		{title: "Broken", build: func(*builder) (*plot.Chart, error) { return nil, boom }},
		{title: "Strict", guarded: true, build: func(*builder) (*plot.Chart, error) { return nil, ulog.ErrTopicNotFound }},
		{title: "Altitudes", build: (*builder).altitudes},
	}

	res := build(t, fixtures.FlightLog())

	require.Len(t, res.Skipped, 2)
	assert.Equal(t, Skip{Title: "Broken", Err: boom, Unexpected: true}, res.Skipped[0])
	assert.Equal(t, Skip{Title: "Strict", Err: ulog.ErrTopicNotFound}, res.Skipped[1])
	assert.Equal(t, 1, res.Shown())
}

func TestBuildEventCharts(t *testing.T) {
	l := fixtures.FlightLog()
	l.Topics = append(l.Topics, fixtures.EventFlags("gps_checks_passed", "reset_vel_to_gps"))

	res := build(t, l)

	assert.Empty(t, res.Skipped)
	charts := byTitle(res)
	assert.Equal(t, []string{"gps_checks_passed", "reset_vel_to_gps"}, labels(charts["Estimator Information Events"]))
	assert.Equal(t, []string{"warning_event_changes"}, labels(charts["Estimator Warning Events"]))
}

func TestBuildSkipsEventChartWithMissingField(t *testing.T) {
	l := fixtures.FlightLog()
	flagsTopic := fixtures.EventFlags()
	delete(flagsTopic.Data, "stopping_mag_use")
	l.Topics = append(l.Topics, flagsTopic)

	res := build(t, l)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "Estimator Warning Events", res.Skipped[0].Title)
	assert.True(t, errors.Is(res.Skipped[0].Err, ulog.ErrFieldNotFound))
	assert.Contains(t, byTitle(res), "Estimator Information Events")
}

func TestBuildReplayHasNoToggleSlot(t *testing.T) {
	l := fixtures.FlightLog()
	l.MsgInfo["replay"] = "original.ulg"

	res := build(t, l)

	assert.False(t, res.HasToggleSlot())
	for _, c := range res.Charts {
		require.NotNil(t, c)
		assert.Nil(t, c.ParamLabel)
	}
}

func TestBuildWithoutParamChangesHasNoToggleSlot(t *testing.T) {
	l := fixtures.FlightLog()
	l.ChangedParameters = nil

	assert.False(t, build(t, l).HasToggleSlot())
}

func TestBuildLegacySchema(t *testing.T) {
	l := &ulog.Log{
		ID:             "legacy",
		StartTimestamp: 0,
		LastTimestamp:  2,
		Topics: []*ulog.Topic{
			{Name: "sensor_combined", Timestamps: []uint64{0, 1, 2}, Data: ulog.Data{
				"baro_alt_meter":     {1, 2, 3},
				"magnetometer_ga[0]": {0, 0, 0},
				"magnetometer_ga[1]": {0, 0, 0},
				"magnetometer_ga[2]": {0, 0, 0},
			}},
			{Name: "vehicle_attitude", Timestamps: []uint64{0, 1, 2}, Data: ulog.Data{
				"rollspeed": {0, 1, 0}, "pitchspeed": {0, 1, 0}, "yawspeed": {0, 1, 0},
			}},
			{Name: "vehicle_visual_odometry", Timestamps: []uint64{0, 1, 2}, Data: ulog.Data{
				"x": {0, 1, 2}, "y": {0, 1, 2}, "z": {0, -1, -2},
			}},
		},
	}

	charts := byTitle(build(t, l))

	require.Contains(t, charts, "Altitudes")
	assert.Equal(t, "sensor_combined", charts["Altitudes"].Series[0].Topic)
	assert.Equal(t, []float64{0, 1, 2}, charts["Altitudes"].Series[1].Y, "visual z is negated")
	assert.Equal(t, "vehicle_attitude", charts["Angular Rates"].Series[0].Topic)
	assert.Equal(t, "sensor_combined", charts["Magnetometer"].Series[0].Topic)
}

func TestBuildLogWithoutKnownTopics(t *testing.T) {
	l := &ulog.Log{ID: "bare", Topics: []*ulog.Topic{{Name: "cpuload", Data: ulog.Data{"load": {0.3}}}}}

	res := build(t, l)

	assert.Zero(t, res.Shown())
	assert.Len(t, res.Skipped, 2)
	assert.Len(t, res.Empty, len(Titles())-2)
}
