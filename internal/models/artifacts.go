package models

// Documentos Mongo para persistir los artefactos del modelo offline.
// Cada artefacto es auto-contenido: el índice se reconstruye solo con
// estos cuatro (popular_books, catalog, matrix_meta+matrix_rows,
// similarity_rows).

// MatrixMetaDoc guarda el orden de filas y columnas de la matriz de
// co-ratings. Este orden es EL invariante del sistema: la fila i de la
// matriz es la fila i y la columna i de la matriz de similitud, nunca se
// permutan por separado.
type MatrixMetaDoc struct {
	ID        string   `bson:"_id"`
	Titles    []string `bson:"titles"`
	UserIDs   []int    `bson:"userIds"`
	UpdatedAt string   `bson:"updatedAt"`
}

// MatrixRowDoc es una fila densa (libro × usuarios) de la matriz de co-ratings.
type MatrixRowDoc struct {
	BIdx    int       `bson:"bIdx"`
	Title   string    `bson:"title"`
	Ratings []float64 `bson:"ratings"`
}

// SimilarityRowDoc es una fila de la matriz de similitud coseno.
type SimilarityRowDoc struct {
	BIdx  int       `bson:"bIdx"`
	Title string    `bson:"title"`
	Sims  []float64 `bson:"sims"`
}
