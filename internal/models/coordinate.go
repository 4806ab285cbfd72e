package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Coordinate wraps a float64 degree value to enable lenient JSON unmarshaling.
// Station feeds publish lon/lat either as JSON numbers or as numeric strings
// (e.g. "-71.0901"), so both forms are accepted.
type Coordinate float64

// MarshalJSON serializes the Coordinate as a plain JSON number.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(c))
}

// UnmarshalJSON parses a JSON number or a numeric string into a Coordinate.
func (c *Coordinate) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*c = Coordinate(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("coordinate must be a number or numeric string: %w", err)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	*c = Coordinate(n)
	return nil
}

// Float64 returns the underlying degree value.
func (c Coordinate) Float64() float64 {
	return float64(c)
}
