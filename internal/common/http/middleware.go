package http

import (
	"net/http"

	"github.com/nbarsukov/authd/internal/common/constants"
	"github.com/nbarsukov/authd/internal/common/httpmetrics"
	"github.com/nbarsukov/authd/internal/common/logger"
)

// BuildBaseHandler wraps a handler in the standard chain:
// recovery -> request size limit -> request metrics.
func BuildBaseHandler(log *logger.Logger, next http.Handler) http.Handler {
	handler := httpmetrics.New().Wrap(next)
	handler = MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)(handler)
	handler = RecoveryMiddleware(log)(handler)
	return handler
}
