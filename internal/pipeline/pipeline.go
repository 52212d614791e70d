package pipeline

import (
	"context"
	"log"
	"time"

	"librosml-tf/internal/config"
	"librosml-tf/internal/ingest"
	"librosml-tf/internal/models"
)

// Params son los umbrales del build offline.
type Params struct {
	MinVotes      int
	TopN          int
	ActiveUserMin int
	FamousBookMin int
	Workers       int
}

func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		MinVotes:      cfg.MinVotes,
		TopN:          cfg.TopN,
		ActiveUserMin: cfg.ActiveUserMin,
		FamousBookMin: cfg.FamousBookMin,
		Workers:       cfg.Workers,
	}
}

// Artifacts son los cuatro blobs serializables del modelo. Con exactamente
// estos cuatro se reconstruye un índice funcional, sin nada más.
type Artifacts struct {
	Popular    []models.PopularBook
	Matrix     *Matrix
	Similarity [][]float64
	Catalog    []models.BookDoc
}

// BuildStats resume un build completo (se devuelve al caller y se vuelca
// al reporte del builder).
type BuildStats struct {
	Clean        *ingest.CleanReport `json:"clean"`
	PopularCount int                 `json:"popularCount"`
	MatrixBooks  int                 `json:"matrixBooks"`
	MatrixUsers  int                 `json:"matrixUsers"`
	Elapsed      time.Duration       `json:"-"`
	ElapsedStr   string              `json:"elapsed"`
}

// Build corre el pipeline offline completo: limpieza, tabla de populares,
// matriz de co-ratings y similitud coseno. Una sola pasada batch; cada
// etapa consume el artefacto ya construido de la anterior, nada se muta
// in place. El ctx solo corta la etapa de similitud (las demás son
// rápidas); progress puede ser nil.
func Build(
	ctx context.Context,
	books []models.BookDoc,
	users []models.UserDoc,
	ratings []models.RatingRow,
	p Params,
	progress ProgressFunc,
) (*Artifacts, *BuildStats, error) {

	start := time.Now()

	// users solo participa del modelo de datos (joins); ninguna agregación
	// lo transforma, igual que en el dataset original
	log.Printf("[build] entrada: %d libros, %d usuarios, %d ratings",
		len(books), len(users), len(ratings))

	enriched, cleanRep := ingest.Enrich(ratings, books)
	log.Printf("[build] limpieza: %d ratings -> %d enriched (sin libro=%d, rating inválido=%d)",
		cleanRep.TotalRatings, cleanRep.Enriched, cleanRep.DroppedNoBook, cleanRep.DroppedBadRating)

	popular := BuildPopularity(enriched, books, p.MinVotes, p.TopN)
	log.Printf("[build] populares: %d entradas (min_votes=%d, top_n=%d)",
		len(popular), p.MinVotes, p.TopN)

	matrix := BuildMatrix(enriched, p.ActiveUserMin, p.FamousBookMin)
	log.Printf("[build] matriz: %d libros × %d usuarios (active>%d, famous>=%d)",
		len(matrix.Titles), len(matrix.UserIDs), p.ActiveUserMin, p.FamousBookMin)

	sims, err := CosineSimilarity(ctx, matrix, p.Workers, progress)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[build] similitud: matriz %d×%d lista", len(sims), len(sims))

	elapsed := time.Since(start)
	stats := &BuildStats{
		Clean:        cleanRep,
		PopularCount: len(popular),
		MatrixBooks:  len(matrix.Titles),
		MatrixUsers:  len(matrix.UserIDs),
		Elapsed:      elapsed,
		ElapsedStr:   elapsed.String(),
	}

	arts := &Artifacts{
		Popular:    popular,
		Matrix:     matrix,
		Similarity: sims,
		Catalog:    books,
	}
	return arts, stats, nil
}
