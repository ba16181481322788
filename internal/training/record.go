// Package training computes distance, mean speed and calories for a single workout session.
package training

import (
	"fmt"
	"math"
)

const (
	metersInKm   = 1000
	minutesInH   = 60
	landStepM    = 0.65
	swimStrokeM  = 1.38
	cmInM        = 100
	kmhToMS      = 0.278
	swimShift    = 1.1
	swimWeightK  = 2
	runSpeedK    = 18
	runSpeedBias = 1.79
	walkWeightK  = 0.035
	walkHeightK  = 0.029
)

// Kind identifies the formula set applied to a record.
type Kind int

const (
	Running Kind = iota + 1
	SportsWalking
	Swimming
)

// String returns the display label of the kind.
func (k Kind) String() string {
	switch k {
	case Running:
		return "Running"
	case SportsWalking:
		return "SportsWalking"
	case Swimming:
		return "Swimming"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// StepLengthM is the distance covered per action (stride or stroke) in meters.
func (k Kind) StepLengthM() float64 {
	if k == Swimming {
		return swimStrokeM
	}
	return landStepM
}

// Record is an immutable workout reading. The zero value is not usable; build one
// with NewRunning, NewSportsWalking, NewSwimming or Read.
type Record struct {
	kind          Kind
	actionCount   int
	durationHours float64
	weightKg      float64
	heightCm      float64
	poolLengthM   float64
	poolLaps      float64
}

// NewRunning builds a running record.
func NewRunning(actionCount int, durationHours, weightKg float64) (Record, error) {
	r := Record{kind: Running, actionCount: actionCount, durationHours: durationHours, weightKg: weightKg}
	return build(r)
}

// NewSportsWalking builds a race-walking record; heightCm must be positive.
func NewSportsWalking(actionCount int, durationHours, weightKg, heightCm float64) (Record, error) {
	r := Record{kind: SportsWalking, actionCount: actionCount, durationHours: durationHours, weightKg: weightKg, heightCm: heightCm}
	return build(r)
}

// NewSwimming builds a swimming record; pool length and lap count must be positive.
func NewSwimming(actionCount int, durationHours, weightKg, poolLengthM, poolLaps float64) (Record, error) {
	r := Record{
		kind:          Swimming,
		actionCount:   actionCount,
		durationHours: durationHours,
		weightKg:      weightKg,
		poolLengthM:   poolLengthM,
		poolLaps:      poolLaps,
	}
	return build(r)
}

func build(r Record) (Record, error) {
	if err := r.validate(); err != nil {
		return Record{}, err
	}
	if err := r.checkResults(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// checkResults rejects inputs that are individually valid but push a derived
// value out of the float64 range.
func (r Record) checkResults() error {
	results := []struct {
		name  string
		value float64
	}{
		{"distance_km", r.Distance()},
		{"mean_speed_kmh", r.MeanSpeed()},
		{"calories_kcal", r.Calories()},
	}
	for _, res := range results {
		if math.IsNaN(res.value) || math.IsInf(res.value, 0) {
			return fmt.Errorf("%w: %s overflows for the given inputs", ErrInvalidMeasurement, res.name)
		}
	}
	return nil
}

func (r Record) validate() error {
	if r.actionCount < 0 {
		return fmt.Errorf("%w: action count must be >= 0, got %d", ErrInvalidMeasurement, r.actionCount)
	}
	if err := positive("duration_hours", r.durationHours); err != nil {
		return err
	}
	if err := positive("weight_kg", r.weightKg); err != nil {
		return err
	}
	switch r.kind {
	case Running:
	case SportsWalking:
		return positive("height_cm", r.heightCm)
	case Swimming:
		if err := positive("pool_length_m", r.poolLengthM); err != nil {
			return err
		}
		return positive("pool_laps", r.poolLaps)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownWorkoutType, r.kind)
	}
	return nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be a positive finite number, got %v", ErrInvalidMeasurement, field, v)
	}
	return nil
}

// Kind reports which formula set the record uses.
func (r Record) Kind() Kind { return r.kind }

// ActionCount is the number of steps or strokes.
func (r Record) ActionCount() int { return r.actionCount }

// DurationHours is the session length in hours.
func (r Record) DurationHours() float64 { return r.durationHours }

// WeightKg is the athlete weight.
func (r Record) WeightKg() float64 { return r.weightKg }

// HeightCm is the athlete height; zero unless the record is SportsWalking.
func (r Record) HeightCm() float64 { return r.heightCm }

// PoolLengthM is the pool length; zero unless the record is Swimming.
func (r Record) PoolLengthM() float64 { return r.poolLengthM }

// PoolLaps is the number of pool lengths swum; zero unless the record is Swimming.
func (r Record) PoolLaps() float64 { return r.poolLaps }

// Distance returns the covered distance in km.
func (r Record) Distance() float64 {
	return float64(r.actionCount) * r.kind.StepLengthM() / metersInKm
}

// MeanSpeed returns the average speed over the session in km/h.
// Swimming derives it from the pool geometry and ignores the stroke count.
func (r Record) MeanSpeed() float64 {
	if r.kind == Swimming {
		return r.poolLengthM * r.poolLaps / metersInKm / r.durationHours
	}
	return r.Distance() / r.durationHours
}

// Calories returns the energy spent in kcal.
func (r Record) Calories() float64 {
	speed := r.MeanSpeed()
	minutes := r.durationHours * minutesInH
	// explicit float64 conversions keep the compiler from fusing multiply-adds
	switch r.kind {
	case Running:
		return (float64(runSpeedK*speed) + runSpeedBias) * r.weightKg / metersInKm * minutes
	case SportsWalking:
		speedMS := speed * kmhToMS
		heightM := r.heightCm / cmInM
		weightTerm := float64(walkWeightK * r.weightKg)
		speedTerm := float64(float64(speedMS*speedMS) / heightM * walkHeightK * r.weightKg)
		return (weightTerm + speedTerm) * minutes
	case Swimming:
		return (speed + swimShift) * swimWeightK * r.weightKg * r.durationHours
	default:
		return 0
	}
}

// Summary computes the full result tuple for the record.
func (r Record) Summary() Summary {
	return Summary{
		Kind:          r.kind,
		Label:         r.kind.String(),
		DurationHours: r.durationHours,
		DistanceKm:    r.Distance(),
		MeanSpeedKmh:  r.MeanSpeed(),
		CaloriesKcal:  r.Calories(),
	}
}
