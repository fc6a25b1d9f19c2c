package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vofmun/internal/delegation/store"
)

func sampleRow(school string) store.DelegationRow {
	return store.DelegationRow{
		SchoolName:             school,
		SchoolAddress:          "1 Harbour View",
		SchoolEmail:            "office@" + school + ".example.org",
		SchoolCountry:          "Qatar",
		DirectorName:           "Rana Haddad",
		DirectorEmail:          "rhaddad@example.org",
		DirectorPhone:          "+97455512345",
		NumFaculty:             2,
		NumDelegates:           10,
		TermsAccepted:          true,
		SpreadsheetFileName:    "roster.xlsx",
		SpreadsheetStoragePath: "school-delegations/2026-02-01/abc-roster.xlsx",
		SpreadsheetMimeType:    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
}

func TestMemoryStoreInsertAssignsIdentity(t *testing.T) {
	s := store.NewMemoryStore()

	id, err := s.Insert(context.Background(), sampleRow("alpha"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	rows, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].ID)
	assert.False(t, rows[0].CreatedAt.IsZero())
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	_, err := s.Insert(ctx, sampleRow("alpha"))
	require.NoError(t, err)
	_, err = s.Insert(ctx, sampleRow("beta"))
	require.NoError(t, err)
	_, err = s.Insert(ctx, sampleRow("gamma"))
	require.NoError(t, err)

	rows, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "gamma", rows[0].SchoolName)
	assert.Equal(t, "beta", rows[1].SchoolName)
	assert.Equal(t, "alpha", rows[2].SchoolName)
}
