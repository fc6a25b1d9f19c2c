// Package service orchestrates school delegation submissions: validation,
// roster upload, then persistence. The roster is uploaded before the row is
// written so a stored delegation always has a retrievable spreadsheet.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"vofmun/internal/delegation/models"
	"vofmun/internal/delegation/schema"
	"vofmun/internal/delegation/store"
	"vofmun/internal/platform/metrics"
	"vofmun/internal/storage"
	dErrors "vofmun/pkg/domain-errors"
	"vofmun/pkg/platform/sentinel"
	"vofmun/pkg/requestcontext"
)

// DelegationStore is the persistence capability the service needs.
type DelegationStore interface {
	Insert(ctx context.Context, row store.DelegationRow) (int64, error)
}

// SpreadsheetStore receives delegation roster files.
type SpreadsheetStore interface {
	EnsureBucket(ctx context.Context, bucket string) error
	Upload(ctx context.Context, bucket, objectKey string, data []byte, contentType string) error
	PublicURL(bucket, objectKey string) string
}

// Service handles school delegation submissions.
type Service struct {
	delegations  DelegationStore
	spreadsheets SpreadsheetStore
	bucket       string
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service. bucket names the delegation spreadsheet bucket.
func New(delegations DelegationStore, spreadsheets SpreadsheetStore, bucket string, opts ...Option) *Service {
	s := &Service{delegations: delegations, spreadsheets: spreadsheets, bucket: bucket, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates a delegation submission, stores its roster and persists
// the delegation. Validation failures carry every violation message joined
// into one advisory string.
func (s *Service) Submit(ctx context.Context, req models.SubmissionRequest) error {
	d, msgs := schema.Validate(req)
	if len(msgs) > 0 {
		s.metrics.ObserveDelegation("validation_error")
		return dErrors.New(dErrors.CodeValidation, strings.Join(msgs, " "))
	}

	if err := s.spreadsheets.EnsureBucket(ctx, s.bucket); err != nil {
		if errors.Is(err, sentinel.ErrUnavailable) {
			s.logger.ErrorContext(ctx, "delegation spreadsheet bucket missing",
				"bucket", s.bucket,
				"request_id", requestcontext.RequestID(ctx))
			s.metrics.ObserveDelegation("storage_unavailable")
			return dErrors.New(dErrors.CodeUnavailable,
				"Delegation spreadsheet uploads are temporarily unavailable while we finish configuring storage. Please try again later or contact support.")
		}
		s.metrics.ObserveDelegation("error")
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify spreadsheet storage")
	}

	name := storage.SanitizeFileName(d.SpreadsheetFileName, d.SpreadsheetMimeType, "delegation")
	key := fmt.Sprintf("school-delegations/%s/%s-%s",
		requestcontext.Now(ctx).Format("2006-01-02"), uuid.NewString(), name)
	if err := s.spreadsheets.Upload(ctx, s.bucket, key, d.SpreadsheetData, d.SpreadsheetMimeType); err != nil {
		s.metrics.ObserveDelegation("error")
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to upload delegation spreadsheet")
	}

	row := store.DelegationRow{
		SchoolName:             d.SchoolName,
		SchoolAddress:          d.SchoolAddress,
		SchoolEmail:            d.SchoolEmail,
		SchoolCountry:          d.SchoolCountry,
		DirectorName:           d.DirectorName,
		DirectorEmail:          d.DirectorEmail,
		DirectorPhone:          d.DirectorPhone,
		NumFaculty:             d.NumFaculty,
		NumDelegates:           d.NumDelegates,
		AdditionalRequests:     d.Requests,
		HeardAbout:             d.HeardAbout,
		TermsAccepted:          d.TermsAccepted,
		SpreadsheetFileName:    name,
		SpreadsheetStoragePath: key,
		SpreadsheetMimeType:    d.SpreadsheetMimeType,
		SpreadsheetURL:         s.spreadsheets.PublicURL(s.bucket, key),
	}
	id, err := s.delegations.Insert(ctx, row)
	if err != nil {
		s.metrics.ObserveDelegation("error")
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store school delegation")
	}

	s.logger.InfoContext(ctx, "school delegation submitted",
		"delegation_id", id,
		"school", d.SchoolName,
		"request_id", requestcontext.RequestID(ctx))
	s.metrics.ObserveDelegation("success")
	return nil
}
