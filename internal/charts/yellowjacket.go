package charts

import (
	"math"

	"flightplots/internal/plot"
)

const radToDeg = 180 / math.Pi

func (b *builder) altitudes() (*plot.Chart, error) {
	p := b.newPlot("distance_sensor", "Altitudes", "[m]")
	p.AddGraph(plot.Fields("current_distance"), []string{"#ae1717"}, []string{"dist_sensor"})
	p.ChangeDataset(b.aliases.BaroAltTopic)
	p.AddGraph(plot.Fields("baro_alt_meter"), []string{"#03cafc"}, []string{"baro"})
	p.ChangeDataset("estimator_local_position")
	p.AddGraph([]plot.Field{plot.Negated("z"), plot.F("dist_bottom")},
		[]string{"#90fc03", "#03fc4e"}, []string{"estimator_z", "estimator_dist_bottom"})
	p.ChangeDataset("vehicle_local_position")
	p.AddGraph([]plot.Field{plot.Negated("z")}, []string{"#fce303"}, []string{"local_pos_z"})
	p.ChangeDataset("vehicle_local_position_setpoint")
	p.AddGraph([]plot.Field{plot.Negated("z")}, []string{"#fc03f8"}, []string{"local_pos_setpoint_z"})
	p.ChangeDataset("vehicle_visual_odometry")
	p.AddGraph([]plot.Field{plot.Negated(b.aliases.OdometryPosition[2])}, []string{"#fc5603"}, []string{"visual_z"})
	return b.finish(p), nil
}

func (b *builder) velocities() (*plot.Chart, error) {
	p := b.newPlot("vehicle_local_position", "X&Y Velocities", "[m/s]")
	p.AddGraph(plot.Fields("vx", "vy"), []string{"#ae1717", "#03cafc"}, []string{"local_pos_vx", "local_pos_vy"})
	p.ChangeDataset("vehicle_local_position_setpoint")
	p.AddGraph(plot.Fields("vx", "vy"), []string{"#fc03f8", "#90fc03"}, []string{"setpoint_vx", "setpoint_vy"})
	p.ChangeDataset("vehicle_visual_odometry")
	vel := b.aliases.OdometryVelocity
	p.AddGraph(plot.Fields(vel[0], vel[1]), []string{"#fc5603", "#fce303"}, []string{"visual_vx", "visual_vy"})
	return b.finish(p), nil
}

func (b *builder) vioPosition() (*plot.Chart, error) {
	p := b.newPlot("vehicle_visual_odometry", "VIO Position", "[m]")
	pos := b.aliases.OdometryPosition
	p.AddGraph(plot.Fields(pos[0], pos[1], pos[2]),
		[]string{"#ae1717", "#03cafc", "#90fc03"}, []string{"visual_x", "visual_y", "visual_z"})
	p.ChangeDataset("vehicle_local_position")
	p.AddGraph(plot.Fields("x", "y"), []string{"#fce303", "#fc03f8"}, []string{"local_pos_x", "local_pos_y"})
	return b.finish(p), nil
}

func (b *builder) vioQuality() (*plot.Chart, error) {
	p := b.newPlot("vehicle_visual_odometry", "VIO Quality and Number of Features", "")
	p.AddGraph(plot.Fields("quality"), []string{"#fc5603"}, []string{"quality"})
	p.ChangeDataset("vehicle_visual_odometry_extended")
	p.AddGraph(plot.Fields("num_features"), []string{"#03cafc"}, []string{"features"})
	return b.finish(p), nil
}

func (b *builder) opticalFlow() (*plot.Chart, error) {
	p := b.newPlot("estimator_optical_flow_vel", "Optical Flow and Body Velocity", "[m/s]")
	p.AddGraph(plot.Fields("vel_body[0]", "vel_body[1]"),
		[]string{"#ae1717", "#03cafc"}, []string{"body_vel_x", "body_vel_y"})
	p.AddGraph(plot.Fields("vel_flow_body[0]", "vel_flow_body[1]"),
		[]string{"#fc03f8", "#90fc03"}, []string{"flow_vel_x", "flow_vel_y"})
	return b.finish(p), nil
}

func (b *builder) angularRates() (*plot.Chart, error) {
	f := b.aliases.RateFields
	fields := []plot.Field{plot.Scaled(f[0], radToDeg), plot.Scaled(f[1], radToDeg), plot.Scaled(f[2], radToDeg)}
	p := b.newPlot(b.aliases.RateEstimatedTopic, "Angular Rates", "[deg/s]")
	p.AddGraph(fields, []string{"#ae1717", "#03cafc", "#90fc03"}, []string{"roll_rate", "pitch_rate", "yaw_rate"})
	p.ChangeDataset(b.aliases.RateGroundTruthTopic)
	p.AddGraph(fields, []string{"#fc03f8", "#fce303", "#fc5603"},
		[]string{"roll_rate_groundtruth", "pitch_rate_groundtruth", "yaw_rate_groundtruth"})
	return b.finish(p), nil
}

func (b *builder) magnetometer() (*plot.Chart, error) {
	p := b.newPlot(b.aliases.MagnetometerTopic, "Magnetometer", "[gauss]")
	p.AddGraph(plot.Fields("magnetometer_ga[0]", "magnetometer_ga[1]", "magnetometer_ga[2]"),
		[]string{"#ae1717", "#03cafc", "#90fc03"}, []string{"x", "y", "z"})
	return b.finish(p), nil
}

func (b *builder) manualControl() (*plot.Chart, error) {
	p := b.newPlot("manual_control_setpoint", "Manual Control Inputs (Radio or Joystick)", "")
	c := b.aliases.ManualControls
	p.AddGraph(plot.Fields(c[0], c[1], c[2], c[3]),
		[]string{"#ae1717", "#03cafc", "#90fc03", "#fc03f8"},
		[]string{"Y / Roll", "X / Pitch", "Yaw", "Throttle " + b.aliases.ThrottleRange})
	return b.finish(p), nil
}

func (b *builder) manualSwitches() (*plot.Chart, error) {
	p := b.newPlot(b.aliases.ManualSwitchesTopic, "Manual Control Switches", "")
	p.AddGraph(plot.Fields("kill_switch", "mode_slot"), []string{"#ae1717", "#03cafc"}, []string{"kill switch", "mode slot"})
	return b.finish(p), nil
}

func (b *builder) power() (*plot.Chart, error) {
	p := b.newPlot("system_power", "Power", "[V]")
	p.AddGraph(plot.Fields("voltage5v_v", "sensors3v3[0]"), []string{"#ae1717", "#03cafc"}, []string{"5 V", "3.3 V"})
	return b.finish(p), nil
}

func (b *builder) tecsAirspeed() (*plot.Chart, error) {
	p := b.newPlot("tecs_status", "TECS Airspeed", "[m/s]")
	p.AddGraph(plot.Fields("true_airspeed_sp"), []string{"#ae1717"}, []string{"airspeed_sp"})
	p.AddGraph(plot.Fields("true_airspeed_filtered"), []string{"#03cafc"}, []string{"airspeed_filtered"})
	return b.finish(p), nil
}

func (b *builder) actuatorControls() (*plot.Chart, error) {
	colors := []string{"#ae1717", "#03cafc", "#90fc03", "#fc03f8"}
	if b.aliases.DynamicControlAlloc {
		p := b.newPlot("actuator_motors", "Actuator Controls", "")
		p.AddGraph(plot.Fields("control[0]", "control[1]", "control[2]", "control[3]"),
			colors, []string{"motor 1", "motor 2", "motor 3", "motor 4"})
		return b.finish(p), nil
	}
	p := b.newPlot("actuator_controls_0", "Actuator Controls", "")
	p.AddGraph(plot.Fields("control[0]", "control[1]", "control[2]", "control[3]"),
		colors, []string{"roll", "pitch", "yaw", "thrust"})
	return b.finish(p), nil
}
