package pipeline

import (
	"testing"

	"librosml-tf/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func er(user int, title string, rating float64) models.EnrichedRating {
	return models.EnrichedRating{UserID: user, Title: title, Rating: rating}
}

func TestBuildMatrixFilters(t *testing.T) {
	// activo: > 2 ratings; famoso: >= 2 raters entre activos
	enriched := []models.EnrichedRating{
		// usuario 1: activo (3 ratings)
		er(1, "A", 8), er(1, "B", 7), er(1, "C", 6),
		// usuario 2: activo (3 ratings)
		er(2, "A", 9), er(2, "B", 8), er(2, "D", 5),
		// usuario 3: NO activo (2 ratings, no es estrictamente > 2)
		er(3, "A", 10), er(3, "B", 10),
	}

	m := BuildMatrix(enriched, 2, 2)

	// A y B tienen 2 ratings entre activos; C y D solo 1
	assert.Equal(t, []string{"A", "B"}, m.Titles)
	assert.Equal(t, []int{1, 2}, m.UserIDs)

	// filas densas: celda = rating, 0 donde falta
	require.Len(t, m.Rows, 2)
	assert.Equal(t, []float64{8, 9}, m.Rows[0]) // A
	assert.Equal(t, []float64{7, 8}, m.Rows[1]) // B

	i, ok := m.RowOf("A")
	require.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = m.RowOf("C") // filtrado: fuera del espacio de filas
	assert.False(t, ok)
}

func TestBuildMatrixZeroFill(t *testing.T) {
	enriched := []models.EnrichedRating{
		er(1, "A", 8), er(1, "B", 7),
		er(2, "A", 9), er(2, "B", 6),
		er(3, "A", 5), er(3, "C", 4), // usuario 3 no calificó B
	}

	m := BuildMatrix(enriched, 1, 2)

	bIdx, ok := m.RowOf("B")
	require.True(t, ok)

	// columna del usuario 3 en la fila de B debe ser 0
	col := -1
	for j, uid := range m.UserIDs {
		if uid == 3 {
			col = j
		}
	}
	require.GreaterOrEqual(t, col, 0)
	assert.Equal(t, 0.0, m.Rows[bIdx][col])
}

func TestBuildMatrixDuplicateRatingsAreAveraged(t *testing.T) {
	// usuario 1 calificó A dos veces: se promedia (política explícita)
	enriched := []models.EnrichedRating{
		er(1, "A", 4), er(1, "A", 8), er(1, "B", 7),
		er(2, "A", 9), er(2, "B", 6),
	}

	m := BuildMatrix(enriched, 1, 2)

	aIdx, ok := m.RowOf("A")
	require.True(t, ok)

	col := -1
	for j, uid := range m.UserIDs {
		if uid == 1 {
			col = j
		}
	}
	require.GreaterOrEqual(t, col, 0)
	assert.Equal(t, 6.0, m.Rows[aIdx][col]) // (4+8)/2
}

func TestBuildMatrixDeterministicOrder(t *testing.T) {
	enriched := []models.EnrichedRating{
		er(9, "Zeta", 8), er(9, "Alfa", 7),
		er(4, "Zeta", 6), er(4, "Alfa", 9),
	}

	m1 := BuildMatrix(enriched, 1, 2)
	m2 := BuildMatrix(enriched, 1, 2)

	// filas lexicográficas, columnas ascendentes, reproducible entre builds
	assert.Equal(t, []string{"Alfa", "Zeta"}, m1.Titles)
	assert.Equal(t, []int{4, 9}, m1.UserIDs)
	assert.Equal(t, m1.Titles, m2.Titles)
	assert.Equal(t, m1.UserIDs, m2.UserIDs)
	assert.Equal(t, m1.Rows, m2.Rows)
}

func TestBuildMatrixEmptyInput(t *testing.T) {
	m := BuildMatrix(nil, 200, 50)
	assert.Empty(t, m.Titles)
	assert.Empty(t, m.UserIDs)
	assert.Empty(t, m.Rows)
}
