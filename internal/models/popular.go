package models

// PopularBook es una entrada de la tabla de populares, inmutable una vez
// construida. Invariante: NumRatings >= MIN_VOTES y la tabla completa está
// ordenada por AvgRating descendente.
type PopularBook struct {
	Rank       int     `json:"rank" bson:"rank"`
	Title      string  `json:"title" bson:"title"`
	Author     string  `json:"author" bson:"author"`
	ImageURL   string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	NumRatings int     `json:"numRatings" bson:"numRatings"`
	AvgRating  float64 `json:"avgRating" bson:"avgRating"`
}
