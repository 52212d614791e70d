package service

import (
	"context"
	"testing"

	"librosml-tf/internal/models"
	"librosml-tf/internal/pipeline"
	"librosml-tf/internal/recsys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sin InitRedis los helpers de cache son no-op, así que el servicio se
// prueba directo contra el índice en memoria
func testIndex(t *testing.T) *recsys.Index {
	t.Helper()

	titles := []string{"A", "B"}
	m := pipeline.NewMatrix(titles, []int{1, 2}, [][]float64{
		{8, 7},
		{8, 7},
	})
	sims, err := pipeline.CosineSimilarity(context.Background(), m, 1, nil)
	require.NoError(t, err)

	return recsys.NewIndex(&pipeline.Artifacts{
		Popular:    []models.PopularBook{{Rank: 1, Title: "A", NumRatings: 300, AvgRating: 8}},
		Matrix:     m,
		Similarity: sims,
		Catalog: []models.BookDoc{
			{ISBN: "1", Title: "A", Author: "Autor A"},
			{ISBN: "2", Title: "B", Author: "Autor B"},
		},
	})
}

func TestRecommendServicePassesThroughIndexErrors(t *testing.T) {
	svc := NewRecommendService(testIndex(t))

	_, err := svc.Recommend(context.Background(), RecRequest{Title: "no existe"})
	require.ErrorIs(t, err, recsys.ErrNotFound)
}

func TestRecommendServiceAppliesKDefaults(t *testing.T) {
	svc := NewRecommendService(testIndex(t))

	items, err := svc.Recommend(context.Background(), RecRequest{Title: "A", K: -5})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].Title)

	items, err = svc.Recommend(context.Background(), RecRequest{Title: "A", K: 9999})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(items), recsys.MaxK)
}

func TestRecommendServicePopularAndHealth(t *testing.T) {
	svc := NewRecommendService(testIndex(t))

	entries, err := svc.Popular(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.True(t, svc.IsLoaded())
	assert.True(t, svc.Health().Similarity)

	results := svc.Search("autor b", 10)
	require.Len(t, results, 1)
	assert.Equal(t, "B", results[0].Title)
}
