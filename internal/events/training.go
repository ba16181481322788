// Package events defines the payloads exchanged over Kafka.
package events

import "time"

// EventTypeTrainingSummarized is the event_type header of TrainingSummarized messages.
const EventTypeTrainingSummarized = "training.summarized"

// TrainingSummarized is emitted when a sensor reading has been turned into a summary.
type TrainingSummarized struct {
	EventID       string    `json:"event_id"`
	TenantID      string    `json:"tenant_id,omitempty"`
	WorkoutType   string    `json:"workout_type"`
	TrainingType  string    `json:"training_type"`
	DurationHours float64   `json:"duration_hours"`
	DistanceKm    float64   `json:"distance_km"`
	MeanSpeedKmh  float64   `json:"mean_speed_kmh"`
	CaloriesKcal  float64   `json:"calories_kcal"`
	Message       string    `json:"message"`
	OccurredAt    time.Time `json:"occurred_at"`
}
