package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/alexanderramin/weekplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLitePlanRepo_SaveLoad(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	forest := testutil.NewWeekForest()

	require.NoError(t, repo.Save(ctx, "2025-07-14", forest))

	got, err := repo.Load(ctx, "2025-07-14")
	require.NoError(t, err)
	assert.True(t, domain.ForestEqual(forest, got))
}

func TestSQLitePlanRepo_SaveOverwrites(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "p", testutil.NewTestForest("a")))
	require.NoError(t, repo.Save(ctx, "p.xml", testutil.NewTestForest("b", "c")))

	got, err := repo.Load(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, "b,c", testutil.Outline(got))

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, ids)
}

func TestSQLitePlanRepo_DocumentMatchesEncoding(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	forest := testutil.NewWeekForest()

	require.NoError(t, repo.Save(ctx, "p", forest))

	doc, err := repo.Document(ctx, "p")
	require.NoError(t, err)
	want, err := EncodePlan(forest)
	require.NoError(t, err)
	assert.Equal(t, want, doc)
}

func TestSQLitePlanRepo_LoadMissing(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))

	_, err := repo.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLitePlanRepo_LoadMalformed(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	_, err := database.ExecContext(ctx,
		`INSERT INTO plans (id, document, created_at, updated_at) VALUES ('bad', ?, '', '')`,
		[]byte(strings.Repeat("<", 3)))
	require.NoError(t, err)

	_, err = repo.Load(ctx, "bad")
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestSQLitePlanRepo_ListAndExists(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, repo.Save(ctx, "b", nil))
	require.NoError(t, repo.Save(ctx, "a", nil))

	ids, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	ok, err := repo.Exists(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Exists(ctx, "z")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Exists(ctx, "../x")
	assert.ErrorIs(t, err, domain.ErrInvalidPlanID)
}
