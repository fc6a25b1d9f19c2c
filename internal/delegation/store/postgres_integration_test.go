//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"vofmun/internal/delegation/store"
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
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "school_delegations"))
}

func (s *PostgresStoreSuite) TestInsertAndList() {
	ctx := context.Background()

	id, err := s.store.Insert(ctx, sampleRow("alpha"))
	s.Require().NoError(err)
	s.Positive(id)

	_, err = s.store.Insert(ctx, sampleRow("beta"))
	s.Require().NoError(err)

	rows, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("beta", rows[0].SchoolName)
	s.Equal("alpha", rows[1].SchoolName)
	s.False(rows[0].CreatedAt.IsZero())
}

func (s *PostgresStoreSuite) TestOptionalFieldsRoundTrip() {
	ctx := context.Background()

	row := sampleRow("gamma")
	row.AdditionalRequests = "Two vegetarian lunches"
	row.HeardAbout = "Instagram"
	row.SpreadsheetURL = "https://storage.example.org/school-delegations/2026-02-01/abc-roster.xlsx"

	_, err := s.store.Insert(ctx, row)
	s.Require().NoError(err)
	_, err = s.store.Insert(ctx, sampleRow("delta"))
	s.Require().NoError(err)

	rows, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	s.Empty(rows[0].AdditionalRequests)
	s.Empty(rows[0].HeardAbout)
	s.Empty(rows[0].SpreadsheetURL)

	s.Equal("Two vegetarian lunches", rows[1].AdditionalRequests)
	s.Equal("Instagram", rows[1].HeardAbout)
	s.Equal(row.SpreadsheetURL, rows[1].SpreadsheetURL)
}
