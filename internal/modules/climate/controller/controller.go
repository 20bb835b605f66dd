package controller

import (
	"context"
	"net/http"

	"climate-api/internal/modules/climate/types"

	"github.com/gorilla/mux"
)

const apiPrefix = "/api/v1.0"

// ClimateService is what the handlers need from the service layer.
type ClimateService interface {
	Precipitation(ctx context.Context) (types.PrecipitationByDate, error)
	Stations(ctx context.Context) ([]string, error)
	TemperatureObservations(ctx context.Context) ([]types.TemperatureObservation, error)
	TemperatureStats(ctx context.Context, r types.DateRange) (types.TemperatureStats, error)
}

type ClimateController interface {
	RegisterRoutes(r *mux.Router)
}

type climateControllerImpl struct {
	service ClimateService
}

func NewClimateController(service ClimateService) ClimateController {
	return &climateControllerImpl{service: service}
}

// RegisterRoutes adds every route to r directly; r's NotFound and
// MethodNotAllowed handlers cover them.
func (c *climateControllerImpl) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", c.handleHome).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/precipitation", c.handlePrecipitation).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/stations", c.handleStations).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/tobs", c.handleTemperatureObservations).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/temp_stats/start_date={start}", c.handleTemperatureStats).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/temp_stats/start_date={start}/end_date={end}", c.handleTemperatureStats).Methods(http.MethodGet)
}
