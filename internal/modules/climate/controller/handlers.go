package controller

import (
	"io"
	"log/slog"
	"net/http"

	"climate-api/internal/modules/climate/views"
	"climate-api/internal/utils"

	"github.com/gorilla/mux"
)

var homeRoutes = []views.Route{
	{Path: apiPrefix + "/precipitation", Description: "precipitation by date for the last year of data"},
	{Path: apiPrefix + "/stations", Description: "all station identifiers"},
	{Path: apiPrefix + "/tobs", Description: "temperature observations of the most active station for the last year of data"},
	{Path: apiPrefix + "/temp_stats/start_date=<start>", Description: "[min, avg, max] temperature from start onwards"},
	{Path: apiPrefix + "/temp_stats/start_date=<start>/end_date=<end>", Description: "[min, avg, max] temperature between start and end inclusive"},
}

func (c *climateControllerImpl) handleHome(w http.ResponseWriter, r *http.Request) {
	data := &views.HomeData{Title: "Hawaii Climate API", Routes: homeRoutes}
	err := utils.WriteHTML(w, http.StatusOK, func(out io.Writer) error {
		return views.RenderHome(out, data)
	})
	if err != nil {
		slog.Error("home template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
	}
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	precipitation, err := c.service.Precipitation(r.Context())
	if err != nil {
		slog.Error("precipitation failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load precipitation")
		return
	}
	utils.WriteJSON(w, http.StatusOK, precipitation)
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	stations, err := c.service.Stations(r.Context())
	if err != nil {
		slog.Error("stations failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load stations")
		return
	}
	utils.WriteJSON(w, http.StatusOK, stations)
}

func (c *climateControllerImpl) handleTemperatureObservations(w http.ResponseWriter, r *http.Request) {
	obs, err := c.service.TemperatureObservations(r.Context())
	if err != nil {
		slog.Error("temperature observations failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load temperature observations")
		return
	}
	utils.WriteJSON(w, http.StatusOK, obs)
}

func (c *climateControllerImpl) handleTemperatureStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dateRange, err := parseDateRange(vars["start"], vars["end"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := c.service.TemperatureStats(r.Context(), dateRange)
	if err != nil {
		slog.Error("temperature stats failed", "start", dateRange.Start, "end", dateRange.End, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load temperature stats")
		return
	}
	utils.WriteJSON(w, http.StatusOK, stats)
}
