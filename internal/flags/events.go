package flags

// InformationEvents lists estimator_event_flags information fields. The
// summary counter comes first so it is shown when no individual flag fired.
var InformationEvents = []string{
	"information_event_changes",
	"gps_checks_passed",
	"reset_vel_to_gps",
	"reset_vel_to_flow",
	"reset_vel_to_vision",
	"reset_vel_to_zero",
	"reset_pos_to_last_known",
	"reset_pos_to_gps",
	"reset_pos_to_vision",
	"starting_gps_fusion",
	"starting_vision_pos_fusion",
	"starting_vision_vel_fusion",
	"starting_vision_yaw_fusion",
	"yaw_aligned_to_imu_gps",
	"reset_hgt_to_baro",
	"reset_hgt_to_gps",
	"reset_hgt_to_rng",
	"reset_hgt_to_ev",
}

// WarningEvents lists estimator_event_flags warning fields, summary first.
var WarningEvents = []string{
	"warning_event_changes",
	"gps_quality_poor",
	"gps_fusion_timout",
	"gps_data_stopped",
	"gps_data_stopped_using_alternate",
	"height_sensor_timeout",
	"stopping_navigation",
	"invalid_accel_bias_cov_reset",
	"bad_yaw_using_gps_course",
	"stopping_mag_use",
	"vision_data_stopped",
	"emergency_yaw_reset_mag_stopped",
	"emergency_yaw_reset_gps_yaw_stopped",
}
