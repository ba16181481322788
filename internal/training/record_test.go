package training

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestRunningFormulas(t *testing.T) {
	rec, err := NewRunning(15000, 1, 75)
	require.NoError(t, err)

	require.InDelta(t, 9.75, rec.Distance(), tolerance)
	require.InDelta(t, 9.75, rec.MeanSpeed(), tolerance)
	require.InDelta(t, 797.805, rec.Calories(), tolerance)

	speed := rec.MeanSpeed()
	require.InDelta(t, (18*speed+1.79)*75/1000*1*60, rec.Calories(), tolerance)
}

func TestRunningCaloriesAcrossInputs(t *testing.T) {
	cases := []struct {
		actions  int
		duration float64
		weight   float64
	}{
		{actions: 0, duration: 0.5, weight: 60},
		{actions: 4200, duration: 0.75, weight: 82.5},
		{actions: 30000, duration: 2.25, weight: 95},
	}
	for _, tc := range cases {
		rec, err := NewRunning(tc.actions, tc.duration, tc.weight)
		require.NoError(t, err)
		speed := float64(tc.actions) * 0.65 / 1000 / tc.duration
		want := (18*speed + 1.79) * tc.weight / 1000 * tc.duration * 60
		require.InDelta(t, want, rec.Calories(), tolerance)
	}
}

func TestSportsWalkingFormulas(t *testing.T) {
	rec, err := NewSportsWalking(9000, 1, 75, 180)
	require.NoError(t, err)

	require.InDelta(t, 5.85, rec.Distance(), tolerance)
	require.InDelta(t, 5.85, rec.MeanSpeed(), tolerance)

	speedMS := 5.85 * 0.278
	want := (0.035*75 + (speedMS*speedMS/1.8)*0.029*75) * 60
	require.InDelta(t, want, rec.Calories(), tolerance)
	require.InDelta(t, 349.2517475, rec.Calories(), 1e-6)
}

func TestSwimmingFormulas(t *testing.T) {
	rec, err := NewSwimming(720, 1, 80, 25, 40)
	require.NoError(t, err)

	require.InDelta(t, 0.9936, rec.Distance(), tolerance)
	require.InDelta(t, 1.0, rec.MeanSpeed(), tolerance)
	require.InDelta(t, 336.0, rec.Calories(), tolerance)
}

func TestSwimmingSpeedIgnoresStrokes(t *testing.T) {
	few, err := NewSwimming(10, 1.5, 70, 50, 30)
	require.NoError(t, err)
	many, err := NewSwimming(9000, 1.5, 70, 50, 30)
	require.NoError(t, err)

	require.Equal(t, few.MeanSpeed(), many.MeanSpeed())
	require.Equal(t, few.Calories(), many.Calories())
	require.NotEqual(t, few.Distance(), many.Distance())
}

func TestDistanceIsLinearInActions(t *testing.T) {
	for _, kind := range []Kind{Running, SportsWalking, Swimming} {
		base := mustRecord(t, kind, 1000)
		doubled := mustRecord(t, kind, 2000)
		require.InDelta(t, 2*base.Distance(), doubled.Distance(), tolerance, kind.String())
		require.InDelta(t, 1000*kind.StepLengthM()/1000, base.Distance(), tolerance, kind.String())
	}
}

func TestSummaryMatchesFormulas(t *testing.T) {
	rec, err := NewSportsWalking(9000, 1, 75, 180)
	require.NoError(t, err)

	s := rec.Summary()
	require.Equal(t, SportsWalking, s.Kind)
	require.Equal(t, "SportsWalking", s.Label)
	require.Equal(t, 1.0, s.DurationHours)
	require.Equal(t, rec.Distance(), s.DistanceKm)
	require.Equal(t, rec.MeanSpeed(), s.MeanSpeedKmh)
	require.Equal(t, rec.Calories(), s.CaloriesKcal)
}

func TestConstructorsRejectInvalidMeasurements(t *testing.T) {
	cases := map[string]func() (Record, error){
		"zero duration":      func() (Record, error) { return NewRunning(100, 0, 70) },
		"negative weight":    func() (Record, error) { return NewRunning(100, 1, -70) },
		"nan duration":       func() (Record, error) { return NewRunning(100, math.NaN(), 70) },
		"negative actions":   func() (Record, error) { return NewRunning(-1, 1, 70) },
		"zero height":        func() (Record, error) { return NewSportsWalking(100, 1, 70, 0) },
		"zero pool length":   func() (Record, error) { return NewSwimming(100, 1, 70, 0, 10) },
		"negative pool laps": func() (Record, error) { return NewSwimming(100, 1, 70, 25, -1) },
		"infinite weight":    func() (Record, error) { return NewSwimming(100, 1, math.Inf(1), 25, 10) },
	}
	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			rec, err := build()
			require.ErrorIs(t, err, ErrInvalidMeasurement)
			require.Equal(t, Record{}, rec)
		})
	}
}

func TestKindLabels(t *testing.T) {
	require.Equal(t, "Running", Running.String())
	require.Equal(t, "SportsWalking", SportsWalking.String())
	require.Equal(t, "Swimming", Swimming.String())
	require.Equal(t, "Kind(0)", Kind(0).String())
	require.Equal(t, 1.38, Swimming.StepLengthM())
	require.Equal(t, 0.65, Running.StepLengthM())
}

func mustRecord(t *testing.T, kind Kind, actions int) Record {
	t.Helper()
	var (
		rec Record
		err error
	)
	switch kind {
	case Running:
		rec, err = NewRunning(actions, 1, 75)
	case SportsWalking:
		rec, err = NewSportsWalking(actions, 1, 75, 180)
	case Swimming:
		rec, err = NewSwimming(actions, 1, 80, 25, 40)
	}
	require.NoError(t, err)
	return rec
}

func TestConstructorsRejectOverflowingResults(t *testing.T) {
	cases := map[string]func() (Record, error){
		"tiny running duration": func() (Record, error) { return NewRunning(15000, 1e-320, 75) },
		"huge swimming weight":  func() (Record, error) { return NewSwimming(720, 1, 1e308, 25, 40) },
		"huge pool geometry":    func() (Record, error) { return NewSwimming(720, 1, 80, 1e200, 1e200) },
		"tiny walking height":   func() (Record, error) { return NewSportsWalking(9000, 1e-300, 75, 1e-300) },
		"huge running weight":   func() (Record, error) { return NewRunning(15000, 1, 1e308) },
	}
	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			rec, err := build()
			require.ErrorIs(t, err, ErrInvalidMeasurement)
			require.ErrorContains(t, err, "overflows")
			require.Equal(t, Record{}, rec)
		})
	}
}

func TestReadRejectsOverflowingResults(t *testing.T) {
	_, err := Read("SWM", []float64{720, 1, 1e308, 25, 40})
	require.ErrorIs(t, err, ErrInvalidMeasurement)

	_, err = Read("RUN", []float64{15000, 1e-320, 75})
	require.ErrorIs(t, err, ErrInvalidMeasurement)
}
