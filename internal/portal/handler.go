package portal

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vofmun/internal/platform/middleware"
	"vofmun/internal/transport/http/shared"
	dErrors "vofmun/pkg/domain-errors"
	"vofmun/pkg/requestcontext"
)

// Handler exposes the portal endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator middleware.TokenValidator
}

// NewHandler creates a portal Handler.
func NewHandler(service *Service, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service, validator: validator}
}

// Register registers the portal routes with the chi router. Login is open;
// everything else sits behind the bearer-token guard.
func (h *Handler) Register(r chi.Router) {
	r.Post("/portal/login", h.handleLogin)

	r.Group(func(g chi.Router) {
		g.Use(middleware.RequireAuth(h.validator, h.logger))
		g.Get("/portal/registrations", h.handleListRegistrations)
		g.Get("/portal/delegations", h.handleListDelegations)
		g.Patch("/portal/registrations/{id}/payment-status", h.handleSetPaymentStatus)
	})
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	tok, err := h.service.Login(ctx, req.Password)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "portal login failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		} else {
			h.logger.WarnContext(ctx, "portal login rejected",
				"request_id", requestID,
				"client_ip", requestcontext.ClientIP(ctx),
			)
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, loginResponse{Token: tok})
}

func (h *Handler) handleListRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.service.ListRegistrations(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list registrations",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"registrations": rows})
}

func (h *Handler) handleListDelegations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.service.ListDelegations(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list delegations",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"delegations": rows})
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

func (h *Handler) handleSetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "Registration not found"))
		return
	}

	var req paymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.SetPaymentStatus(ctx, id, req.PaymentStatus); err != nil {
		switch dErrors.CodeOf(err) {
		case dErrors.CodeValidation, dErrors.CodeNotFound:
			h.logger.WarnContext(ctx, "payment status update rejected",
				"request_id", requestID,
				"registration_id", id,
				"error", err.Error(),
			)
		default:
			h.logger.ErrorContext(ctx, "payment status update failed",
				"request_id", requestID,
				"registration_id", id,
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
