package training

import (
	"fmt"
	"math"
)

// Workout codes reported by sensor packages.
const (
	CodeSwimming      = "SWM"
	CodeRunning       = "RUN"
	CodeSportsWalking = "WLK"
)

// Layout describes how a workout code maps onto a record kind.
type Layout struct {
	Code  string
	Kind  Kind
	Arity int
}

var layouts = map[string]Layout{
	CodeSwimming:      {Code: CodeSwimming, Kind: Swimming, Arity: 5},
	CodeRunning:       {Code: CodeRunning, Kind: Running, Arity: 3},
	CodeSportsWalking: {Code: CodeSportsWalking, Kind: SportsWalking, Arity: 4},
}

// Codes lists the supported workout codes in a stable order.
func Codes() []Layout {
	return []Layout{layouts[CodeSwimming], layouts[CodeRunning], layouts[CodeSportsWalking]}
}

// Lookup resolves a workout code.
func Lookup(code string) (Layout, error) {
	layout, ok := layouts[code]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownWorkoutType, code)
	}
	return layout, nil
}

// Read builds a record from a workout code and its positional fields:
//
//	RUN: action, duration, weight
//	WLK: action, duration, weight, height
//	SWM: action, duration, weight, pool length, pool laps
func Read(code string, fields []float64) (Record, error) {
	layout, err := Lookup(code)
	if err != nil {
		return Record{}, err
	}
	if len(fields) != layout.Arity {
		return Record{}, fmt.Errorf("%w: %s expects %d fields, got %d", ErrInvalidFieldCount, code, layout.Arity, len(fields))
	}

	actions, err := actionCount(fields[0])
	if err != nil {
		return Record{}, err
	}

	switch layout.Kind {
	case Running:
		return NewRunning(actions, fields[1], fields[2])
	case SportsWalking:
		return NewSportsWalking(actions, fields[1], fields[2], fields[3])
	default:
		return NewSwimming(actions, fields[1], fields[2], fields[3], fields[4])
	}
}

// maxActions keeps the count representable as int on 32-bit platforms.
const maxActions = math.MaxInt32

func actionCount(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v != math.Trunc(v) || v > maxActions {
		return 0, fmt.Errorf("%w: action count must be a whole number between 0 and %d, got %v", ErrInvalidMeasurement, maxActions, v)
	}
	return int(v), nil
}
