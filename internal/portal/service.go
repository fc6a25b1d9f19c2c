// Package portal implements the password-gated review portal: one shared
// access phrase unlocks a short-lived bearer token, which in turn grants
// read access to submissions and write access to payment statuses.
package portal

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	delegationstore "vofmun/internal/delegation/store"
	registrationstore "vofmun/internal/registration/store"
	dErrors "vofmun/pkg/domain-errors"
	"vofmun/pkg/platform/sentinel"
)

// PaymentStatuses is the closed set of payment review states.
var PaymentStatuses = []string{"unpaid", "pending", "paid", "flagged", "need_more_info", "fake", "refunded"}

// ValidPaymentStatus reports whether v belongs to the payment status set.
func ValidPaymentStatus(v string) bool {
	for _, s := range PaymentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// TokenIssuer mints portal session tokens.
type TokenIssuer interface {
	IssueToken() (string, error)
}

// RegistrationStore is the registrant access the portal needs.
type RegistrationStore interface {
	List(ctx context.Context) ([]registrationstore.UserRow, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status string) error
}

// DelegationStore is the delegation access the portal needs.
type DelegationStore interface {
	List(ctx context.Context) ([]delegationstore.DelegationRow, error)
}

// Service backs the portal endpoints.
type Service struct {
	passwordHash  string
	tokens        TokenIssuer
	registrations RegistrationStore
	delegations   DelegationStore
	logger        *slog.Logger
}

// NewService constructs a portal Service. passwordHash is the bcrypt hash of
// the shared access phrase; an empty hash disables login entirely.
func NewService(passwordHash string, tokens TokenIssuer, registrations RegistrationStore, delegations DelegationStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		passwordHash:  passwordHash,
		tokens:        tokens,
		registrations: registrations,
		delegations:   delegations,
		logger:        logger,
	}
}

// Login exchanges the access phrase for a session token.
func (s *Service) Login(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", dErrors.New(dErrors.CodeValidation, "Password is required.")
	}
	if s.passwordHash == "" {
		s.logger.ErrorContext(ctx, "portal password hash not configured")
		return "", dErrors.New(dErrors.CodeUnavailable, "The portal is not available right now.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid password provided.")
	}

	tok, err := s.tokens.IssueToken()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue portal token")
	}
	return tok, nil
}

// ListRegistrations returns all registrants, newest first.
func (s *Service) ListRegistrations(ctx context.Context) ([]registrationstore.UserRow, error) {
	rows, err := s.registrations.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registrations")
	}
	return rows, nil
}

// ListDelegations returns all school delegations, newest first.
func (s *Service) ListDelegations(ctx context.Context) ([]delegationstore.DelegationRow, error) {
	rows, err := s.delegations.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load delegations")
	}
	return rows, nil
}

// SetPaymentStatus moves one registrant to a new payment review state.
func (s *Service) SetPaymentStatus(ctx context.Context, id int64, status string) error {
	if !ValidPaymentStatus(status) {
		return dErrors.New(dErrors.CodeValidation, "Unknown payment status")
	}
	if err := s.registrations.UpdatePaymentStatus(ctx, id, status); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Registration not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update payment status")
	}
	return nil
}
