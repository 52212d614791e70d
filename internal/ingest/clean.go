package ingest

import (
	"math"
	"strconv"

	"librosml-tf/internal/models"
)

// CleanReport resume la etapa de limpieza. Los descartes son estadística,
// no errores: el pipeline sigue (política de silent-drop).
type CleanReport struct {
	TotalRatings     int `json:"totalRatings"`
	Enriched         int `json:"enriched"`
	DroppedNoBook    int `json:"droppedNoBook"`    // ISBN sin libro en el catálogo
	DroppedBadRating int `json:"droppedBadRating"` // rating no numérico
}

// Enrich une ratings con la metadata de su libro (join por ISBN) y
// convierte el rating a float64. Filas con ISBN desconocido o rating
// no parseable se descartan y se cuentan. Post-limpieza se cumple el
// invariante: todo EnrichedRating tiene un valor numérico finito.
func Enrich(ratings []models.RatingRow, books []models.BookDoc) ([]models.EnrichedRating, *CleanReport) {
	byISBN := make(map[string]models.BookDoc, len(books))
	for _, b := range books {
		if _, ok := byISBN[b.ISBN]; !ok {
			byISBN[b.ISBN] = b
		}
	}

	rep := &CleanReport{TotalRatings: len(ratings)}
	enriched := make([]models.EnrichedRating, 0, len(ratings))

	for _, rr := range ratings {
		book, ok := byISBN[rr.ISBN]
		if !ok {
			rep.DroppedNoBook++
			continue
		}

		val, err := strconv.ParseFloat(rr.Rating, 64)
		if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
			rep.DroppedBadRating++
			continue
		}

		enriched = append(enriched, models.EnrichedRating{
			UserID:   rr.UserID,
			ISBN:     rr.ISBN,
			Title:    book.Title,
			Author:   book.Author,
			ImageURL: book.ImageURL,
			Rating:   val,
		})
		rep.Enriched++
	}
	return enriched, rep
}

// RepresentativeByTitle colapsa el catálogo a un libro por título.
// Cuando varios ISBN comparten título gana el ISBN lexicográficamente
// menor, para que la metadata elegida no dependa del orden del CSV.
func RepresentativeByTitle(books []models.BookDoc) map[string]models.BookDoc {
	rep := make(map[string]models.BookDoc)
	for _, b := range books {
		cur, ok := rep[b.Title]
		if !ok || b.ISBN < cur.ISBN {
			rep[b.Title] = b
		}
	}
	return rep
}
