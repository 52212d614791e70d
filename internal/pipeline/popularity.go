package pipeline

import (
	"sort"

	"librosml-tf/internal/ingest"
	"librosml-tf/internal/models"
)

// BuildPopularity arma la tabla de populares: agrupa los enriched ratings
// por título, calcula count y promedio, filtra por mínimo de votos y se
// queda con el top-N por promedio descendente. Los empates conservan el
// orden de primera aparición en la entrada (sort estable).
//
// Dataset chico que no llega al umbral => tabla vacía, no es un error.
func BuildPopularity(enriched []models.EnrichedRating, books []models.BookDoc, minVotes, topN int) []models.PopularBook {
	type agg struct {
		count int
		sum   float64
	}

	byTitle := make(map[string]*agg)
	var order []string // orden de primera aparición, para empates estables

	for _, e := range enriched {
		a, ok := byTitle[e.Title]
		if !ok {
			a = &agg{}
			byTitle[e.Title] = a
			order = append(order, e.Title)
		}
		a.count++
		a.sum += e.Rating
	}

	// metadata determinística por título (menor ISBN gana)
	repr := ingest.RepresentativeByTitle(books)

	var entries []models.PopularBook
	for _, title := range order {
		a := byTitle[title]
		if a.count < minVotes {
			continue
		}

		b := repr[title]
		entries = append(entries, models.PopularBook{
			Title:      title,
			Author:     b.Author,
			ImageURL:   b.ImageURL,
			NumRatings: a.count,
			AvgRating:  a.sum / float64(a.count),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AvgRating > entries[j].AvgRating
	})

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
