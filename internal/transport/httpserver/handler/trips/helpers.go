package trips

import (
	"net/http"
	"time"

	commonhandler "trip-planner-go/internal/transport/httpserver/handler/common"
	"trip-planner-go/internal/transport/httpserver/middleware"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func requireUser(w http.ResponseWriter, r *http.Request) (middleware.User, bool) {
	return commonhandler.RequireUser(w, r)
}

func parseDateParam(value *string) (*time.Time, error) {
	return commonhandler.ParseDateParam(value)
}

func parseIntParam(value string, fallback int) (int, error) {
	return commonhandler.ParseIntParam(value, fallback)
}
