// Package handler exposes the signup endpoint.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vofmun/internal/registration/models"
	"vofmun/internal/transport/http/shared"
	dErrors "vofmun/pkg/domain-errors"
	"vofmun/pkg/requestcontext"
)

// Service defines the signup operation the handler fronts.
type Service interface {
	Submit(ctx context.Context, req models.SignupRequest) (int64, error)
}

// Handler handles registration endpoints.
type Handler struct {
	logger  *slog.Logger
	signups Service
}

// New creates a registration Handler.
func New(signups Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, signups: signups}
}

// Register registers the signup route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/signup", h.handleSignup)
}

type signupResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
	Status  string `json:"status"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid signup request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	userID, err := h.signups.Submit(ctx, req)
	if err != nil {
		switch dErrors.CodeOf(err) {
		case dErrors.CodeValidation, dErrors.CodeConflict, dErrors.CodeUnavailable:
			h.logger.WarnContext(ctx, "signup rejected",
				"request_id", requestID,
				"role", req.SelectedRole,
				"error", err.Error(),
			)
			shared.WriteError(w, err)
		default:
			h.logger.ErrorContext(ctx, "signup failed",
				"request_id", requestID,
				"role", req.SelectedRole,
				"error", err.Error(),
			)
			shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "Internal server error. Please try again."))
		}
		return
	}

	shared.WriteJSON(w, http.StatusCreated, signupResponse{
		Message: "Registration submitted successfully!",
		UserID:  userID,
		Status:  "success",
	})
}
