package training

// Summary is the derived result of a record. It is recomputed on every call to
// Record.Summary and never stored on the record.
type Summary struct {
	Kind          Kind
	Label         string
	DurationHours float64
	DistanceKm    float64
	MeanSpeedKmh  float64
	CaloriesKcal  float64
}
