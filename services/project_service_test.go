package services

import (
	"context"
	"testing"

	"knowledge-base/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCRUD(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Areas.Create(ctx, &models.Area{Code: 1700, Name: "Computer Science"}))
	require.NoError(t, store.Areas.Create(ctx, &models.Area{Code: 2600, Name: "Mathematics"}))

	for _, project := range []models.Project{
		{Name: "Beta", Desc: "second", Date: models.NewDate(2022, 5, 1)},
		{Name: "Alpha", Desc: "first", Date: models.NewDate(2022, 5, 1)},
		{Name: "Legacy", Date: models.NewDate(2015, 9, 30)},
	} {
		require.NoError(t, store.Projects.Create(ctx, &project))
	}

	err := store.Projects.Create(ctx, &models.Project{Name: "Alpha", Date: models.NewDate(2024, 1, 1)})
	require.ErrorIs(t, err, ErrDuplicate)

	projects, err := store.Projects.List(ctx)
	require.NoError(t, err)
	var got []string
	for _, project := range projects {
		got = append(got, project.String())
	}
	assert.Equal(t, []string{"[2022-05-01] Alpha", "[2022-05-01] Beta", "[2015-09-30] Legacy"}, got)

	require.NoError(t, store.Projects.AddAreas(ctx, "Alpha", 1700, 2600))
	alpha, err := store.Projects.Get(ctx, "Alpha")
	require.NoError(t, err)
	assert.Equal(t, "first", alpha.Desc)
	require.Len(t, alpha.Areas, 2)
	assert.Equal(t, 2600, alpha.Areas[0].Code)

	require.ErrorIs(t, store.Projects.AddAreas(ctx, "Missing", 1700), ErrNotFound)

	require.NoError(t, store.Projects.Delete(ctx, "Alpha"))
	_, err = store.Projects.Get(ctx, "Alpha")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, store.Projects.Delete(ctx, "Alpha"), ErrNotFound)

	areas, err := store.Areas.List(ctx)
	require.NoError(t, err)
	assert.Len(t, areas, 2)
}
