package http

import (
	"net/http"

	"github.com/nbarsukov/authd/internal/common/logger"
)

func HealthHandler(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		log.Debugf("health check request")
		WriteJSON(w, http.StatusOK, Response{Message: "ok", Success: true})
	}
}
