// Package types holds the row types read from the climate database and the
// JSON shapes the API serves.
package types

import (
	"encoding/json"
	"fmt"
)

// DateLayout is the calendar date format stored in measurement.date.
const DateLayout = "2006-01-02"

// Measurement is one row of the measurement table.
type Measurement struct {
	Station       string   `json:"station"`
	Date          string   `json:"date"`
	Precipitation *float64 `json:"prcp"`
	TOBS          float64  `json:"tobs"`
}

// DatePrecipitation is a (date, prcp) row; Value is nil for NULL.
type DatePrecipitation struct {
	Date  string
	Value *float64
}

// PrecipitationByDate maps a date to its precipitation, or null.
type PrecipitationByDate map[string]*float64

// NewPrecipitationByDate collapses rows into a date-keyed object. Rows are
// applied in order, so a later row with the same date replaces an earlier one.
func NewPrecipitationByDate(rows []DatePrecipitation) PrecipitationByDate {
	out := make(PrecipitationByDate, len(rows))
	for _, r := range rows {
		out[r.Date] = r.Value
	}
	return out
}

// TemperatureObservation is a (date, tobs) pair. It is encoded as a
// two-element JSON array: ["2017-08-23", 77.0].
type TemperatureObservation struct {
	Date string
	TOBS float64
}

func (o TemperatureObservation) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{o.Date, o.TOBS})
}

func (o *TemperatureObservation) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("temperature observation: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &o.Date); err != nil {
		return fmt.Errorf("temperature observation date: %w", err)
	}
	if err := json.Unmarshal(pair[1], &o.TOBS); err != nil {
		return fmt.Errorf("temperature observation tobs: %w", err)
	}
	return nil
}

// TemperatureStats is the (min, avg, max) of tobs over a date range. All
// three are nil when no row matched. Encoded as [min, avg, max].
type TemperatureStats struct {
	Min *float64
	Avg *float64
	Max *float64
}

func (s TemperatureStats) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]*float64{s.Min, s.Avg, s.Max})
}

func (s *TemperatureStats) UnmarshalJSON(b []byte) error {
	var triple []*float64
	if err := json.Unmarshal(b, &triple); err != nil {
		return err
	}
	if len(triple) != 3 {
		return fmt.Errorf("temperature stats: want 3 elements, got %d", len(triple))
	}
	s.Min, s.Avg, s.Max = triple[0], triple[1], triple[2]
	return nil
}

// Empty reports whether the aggregate covered no rows.
func (s TemperatureStats) Empty() bool {
	return s.Min == nil && s.Avg == nil && s.Max == nil
}

// DateRange bounds a stats query. End is optional; empty means unbounded.
type DateRange struct {
	Start string
	End   string
}
