package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Portal",
		testutil.WithBudget(45000),
		testutil.WithMethodology(domain.MethodologyWaterfall),
		testutil.WithProgress(78))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portal", fetched.Name)
	assert.Equal(t, 45000.0, fetched.Budget)
	assert.Equal(t, domain.MethodologyWaterfall, fetched.Methodology)
	assert.Equal(t, 78, fetched.Progress)
	assert.Equal(t, testutil.Date(2025, 12, 31), fetched.EndDate)
	assert.True(t, proj.CreatedAt.Equal(fetched.CreatedAt))
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestProjectRepo_List_CreationOrder(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestProject(name)))
	}

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "Zeta", projects[0].Name)
	assert.Equal(t, "Alpha", projects[1].Name)
	assert.Equal(t, "Mid", projects[2].Name)
}

func TestProjectRepo_FindByIDPrefix(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("A", testutil.WithProjectID("abc-111"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("B", testutil.WithProjectID("abd-222"))))

	matches, err := repo.FindByIDPrefix(ctx, "ab")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = repo.FindByIDPrefix(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "A", matches[0].Name)

	matches, err = repo.FindByIDPrefix(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, matches, "prefix is matched literally")
}

func TestProjectRepo_FindByName_CaseInsensitive(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Portal Web")))

	matches, err := repo.FindByName(ctx, "portal web")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestProjectRepo_Update(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	proj := testutil.NewTestProject("Old")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Name = "New"
	proj.Budget = 99
	proj.Methodology = domain.MethodologyKanban
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", fetched.Name)
	assert.Equal(t, 99.0, fetched.Budget)
	assert.Equal(t, domain.MethodologyKanban, fetched.Methodology)
}

func TestProjectRepo_Update_NotFound(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))

	err := repo.Update(context.Background(), testutil.NewTestProject("Ghost"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProjectRepo_Delete(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	proj := testutil.NewTestProject("Doomed")
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, repo.Delete(ctx, proj.ID))

	_, err := repo.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, proj.ID), apperr.ErrNotFound)
}
