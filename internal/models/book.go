package models

// BookDoc es una fila del catálogo (Books.csv / colección catalog).
// El ISBN es la clave única; el título NO es único: varios ISBN pueden
// compartir título (ediciones distintas), ver comentario en EnrichedRating.
type BookDoc struct {
	ISBN      string `json:"isbn" bson:"isbn"`
	Title     string `json:"title" bson:"title"`
	Author    string `json:"author" bson:"author"`
	Publisher string `json:"publisher,omitempty" bson:"publisher,omitempty"`
	// el dataset trae años basura ("DK Publishing Inc"), lo dejamos como texto
	Year     string `json:"year,omitempty" bson:"year,omitempty"`
	ImageURL string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}

// UserDoc viene de Users.csv. Solo se usa para joins, no se transforma.
type UserDoc struct {
	UserID   int    `json:"userId" bson:"userId"`
	Location string `json:"location,omitempty" bson:"location,omitempty"`
	Age      *int   `json:"age,omitempty" bson:"age,omitempty"`
}

// RatingRow es una fila cruda de Ratings.csv. El rating llega como texto
// y recién se convierte a número en la etapa de limpieza (las filas que
// no se pueden convertir se descartan, no se rellenan con 0).
type RatingRow struct {
	UserID int
	ISBN   string
	Rating string
}

// EnrichedRating es un rating ya unido con la metadata de su libro
// (join por ISBN) y con el valor numérico validado. Es la tabla canónica
// de la que leen todas las agregaciones.
//
// Ojo: aguas abajo el join de facto es por título, aunque el título no sea
// único. La regla determinística para elegir metadata cuando varios ISBN
// comparten título es: gana el ISBN lexicográficamente menor.
type EnrichedRating struct {
	UserID   int
	ISBN     string
	Title    string
	Author   string
	ImageURL string
	Rating   float64
}
