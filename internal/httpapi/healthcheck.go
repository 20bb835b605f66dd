package httpapi

import (
	"database/sql"
	"log/slog"
	"net/http"

	"climate-api/internal/utils"

	"github.com/gorilla/mux"
)

type healthchecker interface {
	handleHealthz(w http.ResponseWriter, r *http.Request)
}

type healthcheckerImpl struct {
	db *sql.DB
}

func NewHealthchecker(db *sql.DB) healthchecker {
	return &healthcheckerImpl{db: db}
}

func (h *healthcheckerImpl) handleHealthz(w http.ResponseWriter, r *http.Request) {
	var ok int
	if err := h.db.QueryRowContext(r.Context(), `SELECT 1`).Scan(&ok); err != nil {
		slog.Error("failed to check database connectivity", "error", err)
		utils.WriteError(w, http.StatusServiceUnavailable, "failed to check database connectivity")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func registerHealthcheck(r *mux.Router, db *sql.DB) {
	healthchecker := NewHealthchecker(db)
	r.HandleFunc("/healthz", healthchecker.handleHealthz).Methods(http.MethodGet)
}
