// Package handler exposes the school delegation endpoint.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vofmun/internal/delegation/models"
	"vofmun/internal/transport/http/shared"
	dErrors "vofmun/pkg/domain-errors"
	"vofmun/pkg/requestcontext"
)

// Service defines the delegation operation the handler fronts.
type Service interface {
	Submit(ctx context.Context, req models.SubmissionRequest) error
}

// Handler handles school delegation endpoints.
type Handler struct {
	logger      *slog.Logger
	delegations Service
}

// New creates a delegation Handler.
func New(delegations Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, delegations: delegations}
}

// Register registers the delegation route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/school-delegations", h.handleSubmit)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req models.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid delegation request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Please review your submission and try again."))
		return
	}

	if err := h.delegations.Submit(ctx, req); err != nil {
		switch dErrors.CodeOf(err) {
		case dErrors.CodeValidation, dErrors.CodeUnavailable:
			h.logger.WarnContext(ctx, "delegation rejected",
				"request_id", requestID,
				"error", err.Error(),
			)
			shared.WriteError(w, err)
		default:
			h.logger.ErrorContext(ctx, "delegation submission failed",
				"request_id", requestID,
				"error", err.Error(),
			)
			shared.WriteError(w, dErrors.New(dErrors.CodeInternal,
				"Unable to submit the school delegation at this time. Please try again later."))
		}
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
