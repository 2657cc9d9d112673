package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldSource     = "source"
	FieldGameID     = "game_id"
	FieldRoomID     = "room_id"
	FieldDeviceID   = "device_id"
	FieldTeamID     = "team_id"
	FieldMode       = "mode"
	FieldSide       = "side"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)
