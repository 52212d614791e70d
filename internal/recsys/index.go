package recsys

import (
	"errors"
	"log"
	"sort"
	"strings"

	"librosml-tf/internal/ingest"
	"librosml-tf/internal/models"
	"librosml-tf/internal/pipeline"
)

const (
	DefaultK = 4
	MaxK     = 20 // por seguridad, no deja pedir 1000 ítems
)

// Errores de consulta. NotFound (el título no está en el espacio de filas,
// el caso real más común) se distingue de NotLoaded (nunca se cargó el
// modelo) para que el caller pueda ofrecer un "did you mean" vía Search.
var (
	ErrNotFound  = errors.New("título no encontrado en el índice")
	ErrNotLoaded = errors.New("modelo no cargado")
)

// Index es el artefacto consultable: orden de filas de la matriz de
// co-ratings + matriz de similitud + catálogo + tabla de populares.
// Se construye una vez y después es de solo lectura, así que las tres
// operaciones (Recommend / Search / Popular) son seguras para lecturas
// concurrentes sin locks.
type Index struct {
	matrix  *pipeline.Matrix
	sims    [][]float64
	catalog []models.BookDoc
	popular []models.PopularBook

	// un libro representante por título (gana el menor ISBN)
	byTitle map[string]models.BookDoc
}

// NewIndex arma el índice desde los cuatro artefactos. Acepta artefactos
// parciales (Health los reporta); Recommend exige matriz+similitud+catálogo.
//
// Acá se valida el invariante del espacio de filas: la matriz de similitud
// tiene que ser R×R con R = filas de la matriz de co-ratings. Si las
// dimensiones no calzan (p.e. un rebuild interrumpido dejó una matriz nueva
// contra una similitud vieja) la similitud se descarta y el índice queda
// degradado, en vez de indexar fuera de rango al consultar.
func NewIndex(a *pipeline.Artifacts) *Index {
	ix := &Index{}
	if a == nil {
		return ix
	}
	ix.matrix = a.Matrix
	ix.sims = a.Similarity
	ix.catalog = a.Catalog
	ix.popular = a.Popular
	if len(a.Catalog) > 0 {
		ix.byTitle = ingest.RepresentativeByTitle(a.Catalog)
	}

	if ix.matrix != nil && ix.sims != nil {
		r := len(ix.matrix.Titles)
		bad := len(ix.sims) != r
		for _, row := range ix.sims {
			if len(row) != r {
				bad = true
				break
			}
		}
		if bad {
			log.Printf("[recsys] similitud %d×? no calza con la matriz de %d filas: artefactos inconsistentes, se descarta la similitud",
				len(ix.sims), r)
			ix.sims = nil
		}
	}
	return ix
}

// Health reporta qué sub-artefactos están presentes (para /health y /).
func (ix *Index) Health() models.IndexHealth {
	return models.IndexHealth{
		Popular:    ix.popular != nil,
		Matrix:     ix.matrix != nil && len(ix.matrix.Titles) > 0,
		Books:      len(ix.catalog) > 0,
		Similarity: len(ix.sims) > 0,
	}
}

func (ix *Index) IsLoaded() bool {
	return ix.Health().Loaded()
}

// Recommend devuelve los k títulos más similares a `title` (sin incluirlo),
// ordenados por score descendente con empate estable por fila ascendente.
// Puede devolver menos de k si la matriz es chica; eso no es un error.
func (ix *Index) Recommend(title string, k int) ([]models.RecommendedBook, error) {
	if !ix.IsLoaded() {
		return nil, ErrNotLoaded
	}
	if k <= 0 {
		k = DefaultK
	} else if k > MaxK {
		k = MaxK
	}

	row, ok := ix.matrix.RowOf(title)
	if !ok {
		return nil, ErrNotFound
	}

	type cand struct {
		idx   int
		score float64
	}
	cands := make([]cand, 0, len(ix.sims[row])-1)
	for j, s := range ix.sims[row] {
		if j == row {
			continue
		}
		cands = append(cands, cand{idx: j, score: s})
	}

	// SliceStable + candidatos generados en orden de fila => empates
	// deterministas por fila ascendente
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})
	if len(cands) > k {
		cands = cands[:k]
	}

	out := make([]models.RecommendedBook, 0, len(cands))
	for _, c := range cands {
		t := ix.matrix.Titles[c.idx]
		b := ix.byTitle[t]
		out = append(out, models.RecommendedBook{
			Title:    t,
			Author:   b.Author,
			ImageURL: b.ImageURL,
			Score:    c.score,
		})
	}
	return out, nil
}

// Search busca por substring (case-insensitive) en título y autor,
// deduplica por título y corta en limit. Solo lectura, sin efectos.
func (ix *Index) Search(query string, limit int) []models.BookSummary {
	if limit <= 0 {
		limit = 20
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.BookSummary{}
	}

	seen := make(map[string]bool)
	out := []models.BookSummary{}

	for _, b := range ix.catalog {
		if seen[b.Title] {
			continue
		}
		if !strings.Contains(strings.ToLower(b.Title), q) &&
			!strings.Contains(strings.ToLower(b.Author), q) {
			continue
		}
		seen[b.Title] = true

		// metadata del representante, no de la primera edición que aparezca
		rb := ix.byTitle[b.Title]
		out = append(out, models.BookSummary{
			Title:     rb.Title,
			Author:    rb.Author,
			ImageURL:  rb.ImageURL,
			Publisher: rb.Publisher,
			Year:      rb.Year,
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}

// Popular devuelve la tabla precalculada de populares, ya rankeada,
// truncada a limit.
func (ix *Index) Popular(limit int) []models.PopularBook {
	out := ix.popular
	if out == nil {
		out = []models.PopularBook{}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
