package pipeline

import (
	"context"
	"testing"

	"librosml-tf/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureInput() ([]models.BookDoc, []models.UserDoc, []models.RatingRow) {
	books := []models.BookDoc{
		{ISBN: "100", Title: "Alfa", Author: "AA", ImageURL: "alfa.jpg"},
		{ISBN: "200", Title: "Beta", Author: "BB", ImageURL: "beta.jpg"},
		{ISBN: "300", Title: "Gamma", Author: "CC", ImageURL: "gamma.jpg"},
	}
	users := []models.UserDoc{
		{UserID: 1}, {UserID: 2}, {UserID: 3}, {UserID: 4}, {UserID: 5},
	}

	var ratings []models.RatingRow
	rate := func(u int, isbn, val string) {
		ratings = append(ratings, models.RatingRow{UserID: u, ISBN: isbn, Rating: val})
	}
	// Alfa y Beta calificados idéntico por los usuarios 1-4; Gamma distinto
	for _, u := range []int{1, 2, 3, 4} {
		rate(u, "100", "8")
		rate(u, "200", "8")
		rate(u, "300", "3")
	}
	rate(5, "300", "9")
	rate(5, "100", "malo")  // rating no numérico: se descarta
	rate(5, "999", "7")     // ISBN sin libro: se descarta
	return books, users, ratings
}

func TestBuildEndToEnd(t *testing.T) {
	books, users, ratings := fixtureInput()

	p := Params{MinVotes: 3, TopN: 10, ActiveUserMin: 2, FamousBookMin: 2, Workers: 2}
	arts, stats, err := Build(context.Background(), books, users, ratings, p, nil)
	require.NoError(t, err)
	require.NotNil(t, arts)

	// limpieza: 15 filas, 2 descartadas
	assert.Equal(t, 15, stats.Clean.TotalRatings)
	assert.Equal(t, 13, stats.Clean.Enriched)
	assert.Equal(t, 1, stats.Clean.DroppedBadRating)
	assert.Equal(t, 1, stats.Clean.DroppedNoBook)

	// populares: los tres títulos llegan a min_votes=3
	require.Len(t, arts.Popular, 3)
	assert.Equal(t, "Alfa", arts.Popular[0].Title) // 8.0 promedio, empate con Beta: orden de entrada
	assert.Equal(t, "Beta", arts.Popular[1].Title)
	assert.Equal(t, "Gamma", arts.Popular[2].Title) // (3*4+9)/5 = 4.2

	// matriz: usuarios 1-4 activos (3 ratings > 2); el 5 no (1 rating limpio)
	assert.Equal(t, []string{"Alfa", "Beta", "Gamma"}, arts.Matrix.Titles)
	assert.Equal(t, []int{1, 2, 3, 4}, arts.Matrix.UserIDs)

	// similitud: Alfa y Beta idénticos => 1.0
	a, _ := arts.Matrix.RowOf("Alfa")
	b, _ := arts.Matrix.RowOf("Beta")
	assert.InDelta(t, 1.0, arts.Similarity[a][b], 1e-12)

	// simetría en todo el resultado
	for i := range arts.Similarity {
		for j := range arts.Similarity[i] {
			assert.InDelta(t, arts.Similarity[j][i], arts.Similarity[i][j], 1e-12)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	books, users, ratings := fixtureInput()
	p := Params{MinVotes: 3, TopN: 10, ActiveUserMin: 2, FamousBookMin: 2, Workers: 3}

	arts1, _, err := Build(context.Background(), books, users, ratings, p, nil)
	require.NoError(t, err)
	arts2, _, err := Build(context.Background(), books, users, ratings, p, nil)
	require.NoError(t, err)

	// mismo input + mismos parámetros = mismos artefactos, bit a bit
	assert.Equal(t, arts1.Popular, arts2.Popular)
	assert.Equal(t, arts1.Matrix.Titles, arts2.Matrix.Titles)
	assert.Equal(t, arts1.Matrix.UserIDs, arts2.Matrix.UserIDs)
	assert.Equal(t, arts1.Matrix.Rows, arts2.Matrix.Rows)
	assert.Equal(t, arts1.Similarity, arts2.Similarity)
}

func TestBuildCancellation(t *testing.T) {
	books, users, ratings := fixtureInput()
	p := Params{MinVotes: 3, TopN: 10, ActiveUserMin: 2, FamousBookMin: 2, Workers: 1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Build(ctx, books, users, ratings, p, nil)
	require.ErrorIs(t, err, context.Canceled)
}
