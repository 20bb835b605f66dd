package httpapi

import (
	"database/sql"
	"net/http"

	"climate-api/internal/utils"

	"github.com/gorilla/mux"
)

// NewRouter returns the root router with the health check registered and
// JSON bodies for unmatched paths and methods.
func NewRouter(db *sql.DB) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
	registerHealthcheck(r, db)
	return r
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusNotFound, "no route for "+r.URL.Path)
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusMethodNotAllowed, r.Method+" is not allowed on "+r.URL.Path)
}
