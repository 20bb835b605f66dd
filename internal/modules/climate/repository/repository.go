package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"log/slog"

	"climate-api/internal/db"
	"climate-api/internal/modules/climate/types"
)

//go:embed sql/get-latest-date.sql
var getLatestDateSQL string

//go:embed sql/get-most-active-station.sql
var getMostActiveStationSQL string

//go:embed sql/get-precipitation.sql
var getPrecipitationSQL string

//go:embed sql/get-stations.sql
var getStationsSQL string

//go:embed sql/get-temperature-observations.sql
var getTemperatureObservationsSQL string

//go:embed sql/get-temperature-stats-from.sql
var getTemperatureStatsFromSQL string

//go:embed sql/get-temperature-stats-range.sql
var getTemperatureStatsRangeSQL string

// ClimateRepository reads the measurement table. Dates are "YYYY-MM-DD"
// strings and every bound is inclusive.
type ClimateRepository interface {
	// LatestDate returns MAX(date); ok is false when the table is empty.
	LatestDate(ctx context.Context) (date string, ok bool, err error)
	// MostActiveStation returns the station with the most rows, ties broken
	// by the smallest id; ok is false when the table is empty.
	MostActiveStation(ctx context.Context) (station string, ok bool, err error)
	GetPrecipitation(ctx context.Context, start, end string) ([]types.DatePrecipitation, error)
	GetStations(ctx context.Context) ([]string, error)
	GetTemperatureObservations(ctx context.Context, station, start, end string) ([]types.TemperatureObservation, error)
	// GetTemperatureStats aggregates over all stations. An empty End leaves
	// the range open above.
	GetTemperatureStats(ctx context.Context, r types.DateRange) (types.TemperatureStats, error)
}

type queries struct {
	latestDate          string
	mostActiveStation   string
	precipitation       string
	stations            string
	temperatureObs      string
	temperatureStatsGTE string
	temperatureStatsBtw string
}

type repositoryImpl struct {
	db *sql.DB
	q  queries
}

func NewRepository(conn *sql.DB, driverName string) ClimateRepository {
	return &repositoryImpl{
		db: conn,
		q: queries{
			latestDate:          db.Rebind(driverName, getLatestDateSQL),
			mostActiveStation:   db.Rebind(driverName, getMostActiveStationSQL),
			precipitation:       db.Rebind(driverName, getPrecipitationSQL),
			stations:            db.Rebind(driverName, getStationsSQL),
			temperatureObs:      db.Rebind(driverName, getTemperatureObservationsSQL),
			temperatureStatsGTE: db.Rebind(driverName, getTemperatureStatsFromSQL),
			temperatureStatsBtw: db.Rebind(driverName, getTemperatureStatsRangeSQL),
		},
	}
}

func (r *repositoryImpl) LatestDate(ctx context.Context) (string, bool, error) {
	var d sql.NullString
	if err := r.db.QueryRowContext(ctx, r.q.latestDate).Scan(&d); err != nil {
		return "", false, err
	}
	return d.String, d.Valid, nil
}

func (r *repositoryImpl) MostActiveStation(ctx context.Context) (string, bool, error) {
	var station string
	err := r.db.QueryRowContext(ctx, r.q.mostActiveStation).Scan(&station)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return station, true, nil
}

func (r *repositoryImpl) GetPrecipitation(ctx context.Context, start, end string) ([]types.DatePrecipitation, error) {
	rows, err := r.db.QueryContext(ctx, r.q.precipitation, start, end)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close precipitation rows", "error", err)
		}
	}()
	var out []types.DatePrecipitation
	for rows.Next() {
		var rec types.DatePrecipitation
		var prcp sql.NullFloat64
		if err := rows.Scan(&rec.Date, &prcp); err != nil {
			return nil, err
		}
		if prcp.Valid {
			v := prcp.Float64
			rec.Value = &v
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetStations(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.q.stations)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close stations rows", "error", err)
		}
	}()
	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetTemperatureObservations(ctx context.Context, station, start, end string) ([]types.TemperatureObservation, error) {
	rows, err := r.db.QueryContext(ctx, r.q.temperatureObs, station, start, end)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close temperature observation rows", "error", err)
		}
	}()
	out := []types.TemperatureObservation{}
	for rows.Next() {
		var o types.TemperatureObservation
		if err := rows.Scan(&o.Date, &o.TOBS); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetTemperatureStats(ctx context.Context, dr types.DateRange) (types.TemperatureStats, error) {
	var row *sql.Row
	if dr.End == "" {
		row = r.db.QueryRowContext(ctx, r.q.temperatureStatsGTE, dr.Start)
	} else {
		row = r.db.QueryRowContext(ctx, r.q.temperatureStatsBtw, dr.Start, dr.End)
	}

	var lo, avg, hi sql.NullFloat64
	if err := row.Scan(&lo, &avg, &hi); err != nil {
		return types.TemperatureStats{}, err
	}
	return types.TemperatureStats{
		Min: nullableFloat(lo),
		Avg: nullableFloat(avg),
		Max: nullableFloat(hi),
	}, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
