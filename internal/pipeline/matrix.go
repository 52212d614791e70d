package pipeline

import (
	"sort"

	"librosml-tf/internal/models"
)

// Matrix es la matriz densa libro × usuario de co-ratings (0 donde no hay
// rating). El orden de Titles es el espacio de índices compartido con la
// matriz de similitud: la fila i de aquí es la fila/columna i de allá.
// Ese orden se fija en la construcción y nunca se permuta por separado.
type Matrix struct {
	Titles  []string
	UserIDs []int
	Rows    [][]float64

	rowOf map[string]int
}

// NewMatrix arma el lookup título -> fila. Se usa también al reconstruir
// la matriz desde Mongo.
func NewMatrix(titles []string, userIDs []int, rows [][]float64) *Matrix {
	m := &Matrix{Titles: titles, UserIDs: userIDs, Rows: rows}
	m.rowOf = make(map[string]int, len(titles))
	for i, t := range titles {
		m.rowOf[t] = i
	}
	return m
}

// RowOf devuelve la fila de un título dentro del espacio de índices.
func (m *Matrix) RowOf(title string) (int, bool) {
	i, ok := m.rowOf[title]
	return i, ok
}

// BuildMatrix construye la matriz de co-ratings:
//  a) usuarios activos: estrictamente más de activeUserMin ratings
//  b) restringe los enriched ratings a esos usuarios
//  c) libros famosos: al menos famousBookMin ratings en ese subconjunto
//  d) restringe de nuevo a esos títulos
//  e) pivotea a matriz densa, celdas faltantes en 0
//
// Filas y columnas quedan en orden lexicográfico/ascendente para que dos
// builds con la misma entrada produzcan exactamente la misma matriz.
// Si un usuario calificó el mismo título más de una vez se promedia
// (política explícita, el origen del dato es ambiguo aquí).
func BuildMatrix(enriched []models.EnrichedRating, activeUserMin, famousBookMin int) *Matrix {
	// (a) conteo por usuario
	perUser := make(map[int]int)
	for _, e := range enriched {
		perUser[e.UserID]++
	}
	active := make(map[int]bool)
	for uid, n := range perUser {
		if n > activeUserMin {
			active[uid] = true
		}
	}

	// (b) solo ratings de usuarios activos
	var filtered []models.EnrichedRating
	for _, e := range enriched {
		if active[e.UserID] {
			filtered = append(filtered, e)
		}
	}

	// (c) conteo por título sobre el subconjunto filtrado
	perTitle := make(map[string]int)
	for _, e := range filtered {
		perTitle[e.Title]++
	}
	famous := make(map[string]bool)
	for t, n := range perTitle {
		if n >= famousBookMin {
			famous[t] = true
		}
	}

	// (d) + (e) pivot: acumular sum/count por celda para promediar duplicados
	type cell struct {
		sum   float64
		count int
	}
	cells := make(map[string]map[int]*cell)
	usersSeen := make(map[int]bool)

	for _, e := range filtered {
		if !famous[e.Title] {
			continue
		}
		row, ok := cells[e.Title]
		if !ok {
			row = make(map[int]*cell)
			cells[e.Title] = row
		}
		c := row[e.UserID]
		if c == nil {
			c = &cell{}
			row[e.UserID] = c
		}
		c.sum += e.Rating
		c.count++
		usersSeen[e.UserID] = true
	}

	titles := make([]string, 0, len(cells))
	for t := range cells {
		titles = append(titles, t)
	}
	sort.Strings(titles)

	userIDs := make([]int, 0, len(usersSeen))
	for uid := range usersSeen {
		userIDs = append(userIDs, uid)
	}
	sort.Ints(userIDs)

	colOf := make(map[int]int, len(userIDs))
	for j, uid := range userIDs {
		colOf[uid] = j
	}

	rows := make([][]float64, len(titles))
	for i, t := range titles {
		row := make([]float64, len(userIDs))
		for uid, c := range cells[t] {
			row[colOf[uid]] = c.sum / float64(c.count)
		}
		rows[i] = row
	}

	return NewMatrix(titles, userIDs, rows)
}
