package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nbarsukov/authd/internal/auth/service"
	"github.com/nbarsukov/authd/internal/common/config"
	commonerrors "github.com/nbarsukov/authd/internal/common/errors"
	commonhttp "github.com/nbarsukov/authd/internal/common/http"
	"github.com/nbarsukov/authd/internal/common/httpmetrics"
	"github.com/nbarsukov/authd/internal/common/logger"
	"github.com/nbarsukov/authd/internal/observability/metrics"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// userPayload is the public projection of a user; the password hash never
// leaves the service.
type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type registerResponse struct {
	commonhttp.Response
	User userPayload `json:"user"`
}

type loginResponse struct {
	commonhttp.Response
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type validationResponse struct {
	commonhttp.Response
	Errors []service.FieldError `json:"errors"`
}

type Handler struct {
	auth *service.AuthService
	cfg  config.AuthConfig
	log  *logger.Logger
}

func NewHandler(auth *service.AuthService, cfg config.AuthConfig, log *logger.Logger) http.Handler {
	h := &Handler{auth: auth, cfg: cfg, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.HandleFunc("/api/auth/register", h.register)
	mux.HandleFunc("/api/auth/login", h.login)
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	user, err := h.auth.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, registerResponse{
		Response: commonhttp.Response{Message: "User created successfully", Success: true},
		User: userPayload{
			ID:       string(user.ID),
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	result, err := h.auth.Login(ctx, service.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, loginResponse{
		Response: commonhttp.Response{Message: "Login successful", Success: true},
		Token:    result.Token,
		User: userPayload{
			ID:       string(result.User.ID),
			Username: result.User.Username,
			Email:    result.User.Email,
		},
	})
}

// writeError maps service errors to a status code and envelope exactly once.
// Internal detail stays out of the response body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if vErr, ok := service.AsValidationError(err); ok {
		recordHTTPError(r, http.StatusBadRequest)
		commonhttp.WriteJSON(w, http.StatusBadRequest, validationResponse{
			Response: commonhttp.Response{Message: "Validation failed", Success: false},
			Errors:   vErr.Fields,
		})
		return
	}

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		status := domainErr.HTTPStatus()
		metrics.DomainErrorsTotal.WithLabelValues(
			string(domainErr.Category()),
			domainErr.Code(),
			strconv.Itoa(status),
		).Inc()
		recordHTTPError(r, status)
		commonhttp.WriteError(w, status, domainErr.Message())
		return
	}

	h.log.Errorf("unhandled error: %v", err)
	recordHTTPError(r, http.StatusInternalServerError)
	commonhttp.WriteError(w, http.StatusInternalServerError, "Internal server error")
}

func recordHTTPError(r *http.Request, status int) {
	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()
}
