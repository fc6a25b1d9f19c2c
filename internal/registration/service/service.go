// Package service orchestrates signup submissions: authoritative validation,
// payment-proof upload, then persistence. The proof is uploaded before the
// row is written so a failed upload never leaves a registrant without one.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"vofmun/internal/platform/metrics"
	"vofmun/internal/registration/models"
	"vofmun/internal/registration/schema"
	"vofmun/internal/registration/store"
	"vofmun/internal/storage"
	dErrors "vofmun/pkg/domain-errors"
	"vofmun/pkg/platform/sentinel"
	"vofmun/pkg/requestcontext"
)

// UserStore is the persistence capability the service needs.
type UserStore interface {
	Insert(ctx context.Context, row store.UserRow) (int64, error)
}

// ProofStore receives payment-proof images.
type ProofStore interface {
	EnsureBucket(ctx context.Context, bucket string) error
	Upload(ctx context.Context, bucket, objectKey string, data []byte, contentType string) error
	PublicURL(bucket, objectKey string) string
}

// Service handles registrant signup.
type Service struct {
	users   UserStore
	proofs  ProofStore
	bucket  string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service. bucket names the payment-proof bucket.
func New(users UserStore, proofs ProofStore, bucket string, opts ...Option) *Service {
	s := &Service{users: users, proofs: proofs, bucket: bucket, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates a signup request, stores its payment proof and persists
// the registrant, returning the new row's ID.
func (s *Service) Submit(ctx context.Context, req models.SignupRequest) (int64, error) {
	reg, violations := schema.Validate(req, schema.FailFast)
	if len(violations) > 0 {
		s.observe(req.SelectedRole, "validation_error")
		return 0, dErrors.New(dErrors.CodeValidation, violations.First())
	}

	row, err := store.ToUserRow(reg)
	if err != nil {
		s.observe(string(reg.Role), "error")
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to prepare registration")
	}

	proofURL, proofName, err := s.uploadProof(ctx, reg.Payment)
	if err != nil {
		s.observe(string(reg.Role), "error")
		return 0, err
	}
	uploadedAt := requestcontext.Now(ctx)
	row.PaymentProofURL = proofURL
	row.PaymentProofFileName = proofName
	row.PaymentProofUploadedAt = &uploadedAt

	id, err := s.users.Insert(ctx, row)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.observe(string(reg.Role), "duplicate_email")
			return 0, dErrors.New(dErrors.CodeConflict, "An account with this email already exists")
		}
		s.observe(string(reg.Role), "error")
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.logger.InfoContext(ctx, "registration submitted",
		"user_id", id,
		"role", reg.Role,
		"request_id", requestcontext.RequestID(ctx))
	s.observe(string(reg.Role), "success")
	return id, nil
}

func (s *Service) uploadProof(ctx context.Context, proof models.PaymentConfirmation) (url, name string, err error) {
	if err := s.proofs.EnsureBucket(ctx, s.bucket); err != nil {
		if errors.Is(err, sentinel.ErrUnavailable) {
			return "", "", dErrors.New(dErrors.CodeUnavailable,
				"Payment proof uploads are temporarily unavailable while we finish configuring storage. Please try again later or contact support.")
		}
		return "", "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify payment proof storage")
	}

	name = storage.SanitizeFileName(proof.FileName, proof.MimeType, "payment-proof")
	key := fmt.Sprintf("%s/%s-%s", requestcontext.Now(ctx).Format("2006-01-02"), uuid.NewString(), name)
	if err := s.proofs.Upload(ctx, s.bucket, key, proof.Data, proof.MimeType); err != nil {
		return "", "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to upload payment proof")
	}
	return s.proofs.PublicURL(s.bucket, key), name, nil
}

func (s *Service) observe(role, outcome string) {
	s.metrics.ObserveRegistration(role, outcome)
}
