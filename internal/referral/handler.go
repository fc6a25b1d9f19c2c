package referral

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vofmun/internal/transport/http/shared"
)

// Handler exposes referral-code validation over HTTP.
type Handler struct {
	logger      *slog.Logger
	maxDistance int
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger, maxDistance: DefaultSuggestionDistance}
}

// Register mounts the referral routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/referral-codes/validate", h.handleValidate)
}

type validateResponse struct {
	Valid       bool         `json:"valid"`
	Owner       string       `json:"owner,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")

	if entry, ok := Lookup(code); ok {
		shared.WriteJSON(w, http.StatusOK, validateResponse{
			Valid:       true,
			Owner:       entry.Owner,
			Suggestions: []Suggestion{},
		})
		return
	}

	suggestions := Suggest(code, h.maxDistance)
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	shared.WriteJSON(w, http.StatusOK, validateResponse{
		Valid:       false,
		Suggestions: suggestions,
	})
}
