package controller

import (
	"errors"
	"fmt"
	"time"

	"climate-api/internal/modules/climate/types"
)

// parseDateRange validates the stats path segments. end may be empty.
func parseDateRange(start, end string) (types.DateRange, error) {
	if start == "" {
		return types.DateRange{}, errors.New("missing start date")
	}
	from, err := time.Parse(types.DateLayout, start)
	if err != nil {
		return types.DateRange{}, fmt.Errorf("invalid start date %q (expected YYYY-MM-DD)", start)
	}
	if end == "" {
		return types.DateRange{Start: start}, nil
	}
	to, err := time.Parse(types.DateLayout, end)
	if err != nil {
		return types.DateRange{}, fmt.Errorf("invalid end date %q (expected YYYY-MM-DD)", end)
	}
	if from.After(to) {
		return types.DateRange{}, errors.New("start date must be <= end date")
	}
	return types.DateRange{Start: start, End: end}, nil
}
