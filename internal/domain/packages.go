package domain

import (
	"encoding/json"
	"fmt"
	"io"
)

// SamplePackages returns the built-in demo readings.
func SamplePackages() []Package {
	return []Package{
		{WorkoutType: "SWM", Data: []float64{720, 1, 80, 25, 40}},
		{WorkoutType: "RUN", Data: []float64{15000, 1, 75}},
		{WorkoutType: "WLK", Data: []float64{9000, 1, 75, 180}},
	}
}

// DecodePackages parses a JSON array of packages.
func DecodePackages(r io.Reader) ([]Package, error) {
	var packages []Package
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&packages); err != nil {
		return nil, fmt.Errorf("decode packages: %w", err)
	}
	return packages, nil
}
