package experience

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"vofmun/internal/platform/metrics"
	dErrors "vofmun/pkg/domain-errors"
	"vofmun/pkg/requestcontext"
)

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// UnconfiguredGenerator stands in when no API key is configured; every parse
// attempt fails with a retryable error.
type UnconfiguredGenerator struct{}

func (UnconfiguredGenerator) Generate(context.Context, string) (string, error) {
	return "", errors.New("generative model not configured")
}

// ParseRequest is the wire shape of a parse request: raw text, which entry
// shape to extract, and an optional caller-supplied prompt.
type ParseRequest struct {
	Text     string `json:"text"`
	RoleType string `json:"roleType"`
	Prompt   string `json:"prompt"`
}

// ParseResult carries the accepted entries.
type ParseResult struct {
	Experiences []map[string]any
}

// Service runs the parse pipeline: prompt, generate, extract, filter.
type Service struct {
	generator Generator
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs a Service.
func NewService(generator Generator, opts ...Option) *Service {
	s := &Service{generator: generator, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse extracts structured experience entries from free text. A model
// response that yields no valid entry is the caller's signal to fall back to
// manual entry.
func (s *Service) Parse(ctx context.Context, req ParseRequest) (*ParseResult, error) {
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.RoleType) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields")
	}

	prompt := BuildPrompt(req.Prompt, req.Text, req.RoleType)
	aiText, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "experience generation failed",
			"role_type", req.RoleType,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx))
		s.metrics.ObserveExperienceParse(req.RoleType, "error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to process experience. Please try again.")
	}

	experiences := ExtractExperiences(aiText, req.RoleType)
	if len(experiences) == 0 {
		s.metrics.ObserveExperienceParse(req.RoleType, "unparseable")
		return nil, dErrors.New(dErrors.CodeUnprocessable,
			"Failed to parse AI response. Please try rephrasing your experience or fill manually.")
	}

	s.metrics.ObserveExperienceParse(req.RoleType, "success")
	return &ParseResult{Experiences: experiences}, nil
}
