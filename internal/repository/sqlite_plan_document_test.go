package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/gradpath/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArchive(t *testing.T) *SQLitePlanArchive {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewSQLitePlanArchive(database, testutil.NewTestUoW(database))
}

func sampleDoc() *PlanDocument {
	return &PlanDocument{
		Goal:               "cs",
		CatalogPath:        "data/catalog.csv",
		CatalogFingerprint: "abc123",
		Request:            json.RawMessage(`{"goal":"cs"}`),
		Response:           json.RawMessage(`{"plan":{"goal":"cs"}}`),
		AdmissionsGaps:     []string{"Missing e (World Language): have 0.0, need 2"},
		GraduationGaps:     []string{"Missing health credits: have 0, need 5", "Total credits short"},
	}
}

func TestPlanArchive_CreateAndGet(t *testing.T) {
	repo := newArchive(t)
	ctx := context.Background()

	doc := sampleDoc()
	require.NoError(t, repo.Create(ctx, doc))
	require.NotEmpty(t, doc.ID)
	require.False(t, doc.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "cs", got.Goal)
	assert.Equal(t, "abc123", got.CatalogFingerprint)
	assert.Equal(t, 1, got.OptimizerPasses)
	assert.JSONEq(t, string(doc.Request), string(got.Request))
	assert.JSONEq(t, string(doc.Response), string(got.Response))
	assert.Equal(t, doc.AdmissionsGaps, got.AdmissionsGaps)
	assert.Equal(t, doc.GraduationGaps, got.GraduationGaps)
	assert.True(t, doc.CreatedAt.Equal(got.CreatedAt))
}

func TestPlanArchive_GetByPrefix(t *testing.T) {
	repo := newArchive(t)
	ctx := context.Background()

	a := sampleDoc()
	a.ID = "aaaaaa11-0000-0000-0000-000000000000"
	b := sampleDoc()
	b.ID = "aaaaaa22-0000-0000-0000-000000000000"
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.GetByID(ctx, "aaaaaa11")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.GetByID(ctx, "aaaaaa")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = repo.GetByID(ctx, "aaa")
	assert.ErrorIs(t, err, ErrNotFound, "short prefixes must match exactly")

	_, err = repo.GetByID(ctx, "zzzzzzzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanArchive_WriteOnce(t *testing.T) {
	repo := newArchive(t)
	ctx := context.Background()

	doc := sampleDoc()
	require.NoError(t, repo.Create(ctx, doc))

	again := sampleDoc()
	again.ID = doc.ID
	err := repo.Create(ctx, again)
	assert.ErrorIs(t, err, ErrAlreadyArchived)
}

func TestPlanArchive_CreateRollsBackOnGapFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	boom := errors.New("disk full")
	uow := &testutil.FailingArchiveUoW{DB: database, Table: "plan_gaps", Nth: 2, Err: boom}
	repo := NewSQLitePlanArchive(database, uow)
	ctx := context.Background()

	doc := sampleDoc()
	err := repo.Create(ctx, doc)
	require.ErrorIs(t, err, boom)

	_, err = repo.GetByID(ctx, doc.ID)
	assert.ErrorIs(t, err, ErrNotFound, "document row is rolled back with its gaps")
}

func TestPlanArchive_List(t *testing.T) {
	repo := newArchive(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, goal := range []string{"cs", "pre_med", "biotech"} {
		doc := sampleDoc()
		doc.Goal = goal
		doc.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if goal == "biotech" {
			doc.AdmissionsGaps = nil
			doc.GraduationGaps = nil
		}
		require.NoError(t, repo.Create(ctx, doc))
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "biotech", all[0].Goal, "newest first")
	assert.Equal(t, 0, all[0].GapCount)
	assert.Equal(t, 3, all[1].GapCount)

	two, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestPlanArchive_GetEmptyGaps(t *testing.T) {
	repo := newArchive(t)
	ctx := context.Background()

	doc := sampleDoc()
	doc.AdmissionsGaps = nil
	doc.GraduationGaps = nil
	require.NoError(t, repo.Create(ctx, doc))

	got, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AdmissionsGaps)
	assert.NotNil(t, got.GraduationGaps)
}
