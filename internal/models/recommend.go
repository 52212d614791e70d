package models

// RecommendedBook es un ítem devuelto por el índice de recomendaciones.
type RecommendedBook struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Score    float64 `json:"score"`
}

// BookSummary es lo que devuelve /books/search (igual que el catálogo,
// pero deduplicado por título).
type BookSummary struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Year      string `json:"year,omitempty"`
}

// IndexHealth reporta qué artefactos del modelo están cargados.
// Las claves siguen a los cuatro blobs serializados: populares, matriz
// de co-ratings, catálogo y matriz de similitud.
type IndexHealth struct {
	Popular    bool `json:"popular"`
	Matrix     bool `json:"matrix"`
	Books      bool `json:"books"`
	Similarity bool `json:"similarity"`
}

// Loaded indica si el índice puede responder recomendaciones
// (necesita matriz, similitud y catálogo; populares es independiente).
func (h IndexHealth) Loaded() bool {
	return h.Matrix && h.Similarity && h.Books
}
