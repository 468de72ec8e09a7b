package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catview/domain/catalog"
	"catview/domain/core"
)

func newDataset(name string, at time.Time) *catalog.Dataset {
	return &catalog.Dataset{
		ID:               core.DatasetID(core.NewID()),
		OriginalFilename: name,
		FilePath:         "/tmp/" + name,
		Sheets:           []string{"Sheet1"},
		CreatedAt:        core.NewTimestamp(at),
	}
}

func TestDatasetRepositoryRoundTrip(t *testing.T) {
	repo := NewDatasetRepository()
	ctx := context.Background()

	ds := newDataset("catalog.xlsx", time.Now())
	require.NoError(t, repo.Create(ctx, ds))

	got, err := repo.GetByID(ctx, ds.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.OriginalFilename, got.OriginalFilename)
	assert.Equal(t, ds.Sheets, got.Sheets)

	require.NoError(t, repo.Delete(ctx, ds.ID))
	_, err = repo.GetByID(ctx, ds.ID)
	assert.True(t, core.IsNotFoundError(err))
}

func TestDatasetRepositoryListNewestFirst(t *testing.T) {
	repo := NewDatasetRepository()
	ctx := context.Background()
	base := time.Now()

	older := newDataset("older.csv", base.Add(-time.Hour))
	newer := newDataset("newer.csv", base)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	all, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "newer.csv", all[0].OriginalFilename)

	page, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "older.csv", page[0].OriginalFilename)

	empty, err := repo.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSessionRepositoryCopiesOnReadAndWrite(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := &catalog.Session{
		ID:        core.SessionID(core.NewID()),
		DatasetID: core.DatasetID(core.NewID()),
		Mapping:   catalog.Mapping{catalog.RoleModule: "Module"},
		CreatedAt: core.Now(),
		UpdatedAt: core.Now(),
	}
	require.NoError(t, repo.Create(ctx, session))

	// Mutating the original after Create must not leak into the store.
	session.Mapping[catalog.RoleSegment] = "Segment"

	got, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, got.Mapping, 1)

	// Mutating a returned copy must not leak either.
	got.Selections = got.Selections.Set(catalog.RoleModule, "Food")
	again, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Selections)
}

func TestSessionRepositoryUpdateUnknown(t *testing.T) {
	repo := NewSessionRepository()
	session := &catalog.Session{ID: core.SessionID(core.NewID())}
	err := repo.Update(context.Background(), session)
	assert.True(t, core.IsNotFoundError(err))
}
