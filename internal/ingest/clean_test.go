package ingest

import (
	"math"
	"testing"

	"librosml-tf/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrich(t *testing.T) {
	books := []models.BookDoc{
		{ISBN: "111", Title: "Libro Uno", Author: "Autor A", ImageURL: "http://img/1.jpg"},
		{ISBN: "222", Title: "Libro Dos", Author: "Autor B"},
	}
	ratings := []models.RatingRow{
		{UserID: 1, ISBN: "111", Rating: "8"},
		{UserID: 1, ISBN: "222", Rating: "7.5"},
		{UserID: 2, ISBN: "111", Rating: "no-es-numero"}, // se descarta, no se pone en 0
		{UserID: 2, ISBN: "999", Rating: "5"},            // ISBN sin libro
		{UserID: 3, ISBN: "222", Rating: "NaN"},          // parsea pero no es finito
	}

	enriched, rep := Enrich(ratings, books)

	require.Len(t, enriched, 2)
	assert.Equal(t, 5, rep.TotalRatings)
	assert.Equal(t, 2, rep.Enriched)
	assert.Equal(t, 1, rep.DroppedNoBook)
	assert.Equal(t, 2, rep.DroppedBadRating)

	// invariante post-limpieza: solo valores numéricos finitos
	for _, e := range enriched {
		assert.False(t, math.IsNaN(e.Rating))
		assert.False(t, math.IsInf(e.Rating, 0))
	}

	// el join copia la metadata del libro
	assert.Equal(t, "Libro Uno", enriched[0].Title)
	assert.Equal(t, "Autor A", enriched[0].Author)
	assert.Equal(t, 8.0, enriched[0].Rating)
}

func TestRepresentativeByTitle(t *testing.T) {
	// varios ISBN con el mismo título: gana el ISBN menor, sin importar
	// el orden de entrada
	books := []models.BookDoc{
		{ISBN: "555", Title: "Repetido", Author: "Edición Tardía"},
		{ISBN: "111", Title: "Repetido", Author: "Edición Original"},
		{ISBN: "333", Title: "Repetido", Author: "Edición Media"},
		{ISBN: "777", Title: "Único", Author: "Solo"},
	}

	repr := RepresentativeByTitle(books)

	assert.Equal(t, "111", repr["Repetido"].ISBN)
	assert.Equal(t, "Edición Original", repr["Repetido"].Author)
	assert.Equal(t, "Solo", repr["Único"].Author)
}
