package training

import "errors"

var (
	// ErrUnknownWorkoutType is returned when a workout code has no registered kind.
	ErrUnknownWorkoutType = errors.New("unknown workout type")
	// ErrInvalidFieldCount indicates the reading does not match the arity of its workout code.
	ErrInvalidFieldCount = errors.New("invalid field count")
	// ErrInvalidMeasurement is returned for non-finite or non-physical measurements.
	ErrInvalidMeasurement = errors.New("invalid measurement")
)

// ErrorType maps a calculator error onto a stable snake_case identifier used in
// API responses and metric labels. Unrecognised errors map to "internal".
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownWorkoutType):
		return "unknown_workout_type"
	case errors.Is(err, ErrInvalidFieldCount):
		return "invalid_field_count"
	case errors.Is(err, ErrInvalidMeasurement):
		return "invalid_measurement"
	default:
		return "internal"
	}
}

// IsRejection reports whether err means the reading itself is unusable, as
// opposed to an infrastructure failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrUnknownWorkoutType) ||
		errors.Is(err, ErrInvalidFieldCount) ||
		errors.Is(err, ErrInvalidMeasurement)
}
