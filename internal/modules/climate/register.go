package climate

import (
	"database/sql"

	"climate-api/internal/config"
	"climate-api/internal/modules/climate/controller"
	"climate-api/internal/modules/climate/repository"
	"climate-api/internal/modules/climate/service"

	"github.com/gorilla/mux"
)

func RegisterFeature(r *mux.Router, db *sql.DB, cfg config.Config) {
	climateRepository := repository.NewRepository(db, cfg.Driver)
	climateService := service.NewService(climateRepository, cfg.TOBSStation)
	climateController := controller.NewClimateController(climateService)
	climateController.RegisterRoutes(r)
}
