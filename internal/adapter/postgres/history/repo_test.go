package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/wordlookup/internal/adapter/postgres"
	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/history"
	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/wordlookup/internal/domain"
)

func record(word string, at time.Time) domain.LookupRecord {
	return domain.LookupRecord{
		ID:           uuid.New(),
		Word:         word,
		Phonetic:     "/" + word + "/",
		MeaningCount: 2,
		LookedUpAt:   at.UTC().Truncate(time.Microsecond),
	}
}

func TestRepo_RecordAndListRecent(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateHistory(t, pool)
	repo := history.New(pool, postgres.NewTxManager(pool), 0)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	older := record("cat", base)
	newer := record("dog", base.Add(time.Minute))

	require.NoError(t, repo.Record(ctx, older))
	require.NoError(t, repo.Record(ctx, newer))

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer, got[0])
	assert.Equal(t, older, got[1])

	got, err = repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dog", got[0].Word)
}

func TestRepo_ListRecent_Empty(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateHistory(t, pool)
	repo := history.New(pool, postgres.NewTxManager(pool), 0)

	got, err := repo.ListRecent(context.Background(), 10)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepo_Record_Prunes(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateHistory(t, pool)
	repo := history.New(pool, postgres.NewTxManager(pool), 3)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, w := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, repo.Record(ctx, record(w, base.Add(time.Duration(i)*time.Second))))
	}

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	words := make([]string, len(got))
	for i, r := range got {
		words[i] = r.Word
	}
	assert.Equal(t, []string{"e", "d", "c"}, words)
}

func TestRepo_Record_DuplicateID(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateHistory(t, pool)
	repo := history.New(pool, postgres.NewTxManager(pool), 0)
	ctx := context.Background()

	rec := record("cat", time.Now())
	require.NoError(t, repo.Record(ctx, rec))

	err := repo.Record(ctx, rec)
	assert.True(t, errors.Is(err, domain.ErrAlreadyExists), "got %v", err)
}

func TestRepo_Record_EmptyWordRejected(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateHistory(t, pool)
	repo := history.New(pool, postgres.NewTxManager(pool), 0)

	err := repo.Record(context.Background(), record("", time.Now()))

	assert.ErrorIs(t, err, domain.ErrValidation)
}
