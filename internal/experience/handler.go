package experience

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vofmun/internal/transport/http/shared"
	dErrors "vofmun/pkg/domain-errors"
	"vofmun/pkg/requestcontext"
)

// Handler exposes the experience parsing endpoint. Its error body uses an
// "error" key rather than the status/message envelope, matching what the
// signup form expects.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler creates an experience Handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the parse route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/parse-experience", h.handleParse)
}

type parseResponse struct {
	Success     bool             `json:"success"`
	Experiences []map[string]any `json:"experiences"`
	Count       int              `json:"count"`
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid parse request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		h.writeError(w, dErrors.New(dErrors.CodeBadRequest, "Missing required fields"))
		return
	}

	result, err := h.service.Parse(ctx, req)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "experience parse failed",
				"request_id", requestID,
				"role_type", req.RoleType,
				"error", err.Error(),
			)
		} else {
			h.logger.WarnContext(ctx, "experience parse rejected",
				"request_id", requestID,
				"role_type", req.RoleType,
				"error", err.Error(),
			)
		}
		h.writeError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, parseResponse{
		Success:     true,
		Experiences: result.Experiences,
		Count:       len(result.Experiences),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	shared.WriteJSON(w, dErrors.ToHTTPStatus(dErrors.CodeOf(err)), map[string]string{
		"error": dErrors.MessageOf(err),
	})
}
