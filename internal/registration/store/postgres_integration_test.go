//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"vofmun/internal/registration/store"
	"vofmun/pkg/platform/sentinel"
	"vofmun/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgresStore(s.postgres.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "users"))
}

func testRow(email string) store.UserRow {
	return store.UserRow{
		Email:              email,
		FirstName:          "Test",
		LastName:           "User",
		Role:               "delegate",
		DelegateData:       []byte(`{"experience":"beginner"}`),
		RegistrationStatus: "pending",
		PaymentStatus:      "unpaid",
	}
}

func (s *PostgresStoreSuite) TestInsertAndList() {
	ctx := context.Background()

	id, err := s.store.Insert(ctx, testRow("first@example.org"))
	s.Require().NoError(err)
	s.Positive(id)

	_, err = s.store.Insert(ctx, testRow("second@example.org"))
	s.Require().NoError(err)

	rows, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("second@example.org", rows[0].Email)
	s.False(rows[0].CreatedAt.IsZero())
	s.JSONEq(`{"experience":"beginner"}`, string(rows[0].DelegateData))
}

func (s *PostgresStoreSuite) TestDuplicateEmailConflicts() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, testRow("dup@example.org"))
	s.Require().NoError(err)

	_, err = s.store.Insert(ctx, testRow("DUP@example.org"))
	s.ErrorIs(err, sentinel.ErrConflict)
}

// TestConcurrentDuplicateEmail verifies that simultaneous submissions with the
// same email produce exactly one row.
func (s *PostgresStoreSuite) TestConcurrentDuplicateEmail() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Insert(ctx, testRow("race@example.org"))
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load())
	s.Equal(int32(goroutines-1), conflictCount.Load())

	rows, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(rows, 1)
}

func (s *PostgresStoreSuite) TestUpdatePaymentStatus() {
	ctx := context.Background()

	id, err := s.store.Insert(ctx, testRow("payer@example.org"))
	s.Require().NoError(err)

	s.Require().NoError(s.store.UpdatePaymentStatus(ctx, id, "paid"))

	rows, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Equal("paid", rows[0].PaymentStatus)

	err = s.store.UpdatePaymentStatus(ctx, id+1000, "paid")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
