// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/penshort/userapi/api"
	"github.com/penshort/userapi/internal/apierror"
	"github.com/penshort/userapi/internal/handler/dto"
	"github.com/penshort/userapi/internal/metrics"
	"github.com/penshort/userapi/internal/middleware"
)

// Service identity reported by GET /.
const (
	ServiceName    = "userapi"
	ServiceVersion = "0.1.0"
)

// Handler serves the routes that do not belong to a resource.
type Handler struct {
	logger  *slog.Logger
	metrics metrics.Recorder
}

// New creates a new Handler instance. recorder may be nil.
func New(logger *slog.Logger, recorder metrics.Recorder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Handler{logger: logger, metrics: recorder}
}

// Root reports the service name and version.
// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.OK(dto.ServiceInfo{
		Name:    ServiceName,
		Version: ServiceVersion,
	}))
}

// OpenAPI serves the OpenAPI document.
// GET /openapi.yaml
func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(api.OpenAPI)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeAPIError(w, r, h.logger, h.metrics, apierror.NotFound("resource not found"))
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, apierror.Body{Error: "method not allowed"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeAPIError maps err onto the error taxonomy and writes the response.
// Server-side failures are logged with their detail, which the client never sees.
func writeAPIError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, recorder metrics.Recorder, err error) {
	apiErr := apierror.From(err)
	recorder.IncAPIError(apiErr.Kind.String())

	if apiErr.Kind == apierror.KindDatabase || apiErr.Kind == apierror.KindInternal {
		logger.Error("request_failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"kind", apiErr.Kind.String(),
			"error", err.Error(),
		)
	}

	status, body := apierror.ToResponse(apiErr)
	writeJSON(w, status, body)
}
