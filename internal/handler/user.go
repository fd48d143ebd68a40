package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/penshort/userapi/internal/apierror"
	"github.com/penshort/userapi/internal/handler/dto"
	"github.com/penshort/userapi/internal/metrics"
	"github.com/penshort/userapi/internal/model"
	"github.com/penshort/userapi/internal/service"
)

// Boundary-level request parsing failures. These are not taxonomy kinds.
const (
	msgInvalidBody   = "invalid request body"
	msgInvalidUserID = "invalid user id"
	msgBodyTooLarge  = "request body too large"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc     *service.UserService
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewUserHandler creates a new UserHandler. recorder may be nil.
func NewUserHandler(svc *service.UserService, logger *slog.Logger, recorder metrics.Recorder) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserHandler{
		svc:     svc,
		logger:  logger,
		metrics: recorder,
	}
}

// List handles GET /api/v1/users.
// Without page or per_page the response is a bare array; with either it is
// a paginated envelope.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("page") && !query.Has("per_page") {
		users, err := h.svc.ListUsers(r.Context())
		if err != nil {
			writeAPIError(w, r, h.logger, h.metrics, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
		return
	}

	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))

	result, err := h.svc.ListUsersPage(r.Context(), page, perPage)
	if err != nil {
		writeAPIError(w, r, h.logger, h.metrics, err)
		return
	}

	total := uint64(0)
	if result.Total > 0 {
		total = uint64(result.Total)
	}

	writeJSON(w, http.StatusOK, dto.NewPaginatedResponse[*model.User](
		result.Users, total, uint32(result.Page), uint32(result.PerPage),
	))
}

// Get handles GET /api/v1/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apierror.Body{Error: msgInvalidUserID})
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		writeAPIError(w, r, h.logger, h.metrics, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Create handles POST /api/v1/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, apierror.Body{Error: msgBodyTooLarge})
			return
		}
		writeJSON(w, http.StatusBadRequest, apierror.Body{Error: msgInvalidBody})
		return
	}

	user, err := h.svc.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		writeAPIError(w, r, h.logger, h.metrics, err)
		return
	}

	h.logger.Info("user_created", "user_id", user.ID.String())

	writeJSON(w, http.StatusCreated, user)
}
