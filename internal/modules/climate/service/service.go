package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"climate-api/internal/modules/climate/repository"
	"climate-api/internal/modules/climate/types"
)

// yearWindowDays is how far back "the past year" reaches from the latest
// date in the dataset.
const yearWindowDays = 366

type Service struct {
	repository  repository.ClimateRepository
	tobsStation string
}

// NewService returns a Service. tobsStation pins the station used for
// temperature observations; empty means the most active station.
func NewService(repository repository.ClimateRepository, tobsStation string) *Service {
	return &Service{repository: repository, tobsStation: tobsStation}
}

// YearWindow returns the inclusive [last - 366 days, last] range.
func YearWindow(last string) (start, end string, err error) {
	t, err := time.Parse(types.DateLayout, last)
	if err != nil {
		return "", "", fmt.Errorf("parse latest date %q: %w", last, err)
	}
	return t.AddDate(0, 0, -yearWindowDays).Format(types.DateLayout), last, nil
}

func (s *Service) yearWindow(ctx context.Context) (start, end string, ok bool, err error) {
	last, ok, err := s.repository.LatestDate(ctx)
	if err != nil {
		return "", "", false, fmt.Errorf("latest date: %w", err)
	}
	if !ok {
		return "", "", false, nil
	}
	start, end, err = YearWindow(last)
	if err != nil {
		return "", "", false, err
	}
	return start, end, true, nil
}

// Precipitation returns the past year of precipitation keyed by date.
func (s *Service) Precipitation(ctx context.Context) (types.PrecipitationByDate, error) {
	start, end, ok, err := s.yearWindow(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return types.PrecipitationByDate{}, nil
	}
	rows, err := s.repository.GetPrecipitation(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("precipitation %s..%s: %w", start, end, err)
	}
	return types.NewPrecipitationByDate(rows), nil
}

func (s *Service) Stations(ctx context.Context) ([]string, error) {
	stations, err := s.repository.GetStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("stations: %w", err)
	}
	return stations, nil
}

// TemperatureObservations returns the past year of (date, tobs) pairs for the
// configured station, or the most active one.
func (s *Service) TemperatureObservations(ctx context.Context) ([]types.TemperatureObservation, error) {
	start, end, ok, err := s.yearWindow(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []types.TemperatureObservation{}, nil
	}

	station := s.tobsStation
	if station == "" {
		station, _, err = s.repository.MostActiveStation(ctx)
		if err != nil {
			return nil, fmt.Errorf("most active station: %w", err)
		}
	}
	slog.Debug("temperature observations", "station", station, "start", start, "end", end)

	obs, err := s.repository.GetTemperatureObservations(ctx, station, start, end)
	if err != nil {
		return nil, fmt.Errorf("temperature observations for %s: %w", station, err)
	}
	return obs, nil
}

// TemperatureStats returns [min, avg, max] of tobs across all stations.
func (s *Service) TemperatureStats(ctx context.Context, r types.DateRange) (types.TemperatureStats, error) {
	stats, err := s.repository.GetTemperatureStats(ctx, r)
	if err != nil {
		if r.End == "" {
			return types.TemperatureStats{}, fmt.Errorf("temperature stats from %s: %w", r.Start, err)
		}
		return types.TemperatureStats{}, fmt.Errorf("temperature stats %s..%s: %w", r.Start, r.End, err)
	}
	return stats, nil
}
