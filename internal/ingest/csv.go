package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"librosml-tf/internal/models"
)

// Lectores de los tres CSV crudos (Books / Users / Ratings).
// Política de la frontera de ingesta: filas malformadas (columnas de menos,
// bytes raros) se saltan y se cuentan, nunca tumban el pipeline. Lo único
// fatal es que falte una columna de join en el header (error estructural).

// LoadReport acumula cuántas filas se leyeron y cuántas se saltaron.
type LoadReport struct {
	Rows    int
	Skipped int
}

// ErrSchema marca un error estructural: el header no trae una columna
// obligatoria. Aborta el build completo.
type ErrSchema struct {
	File   string
	Column string
}

func (e *ErrSchema) Error() string {
	return fmt.Sprintf("schema inválido en %s: falta la columna %q", e.File, e.Column)
}

func openCSV(path string) (*os.File, *csv.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return f, r, nil
}

// colIndex busca una columna por nombre en el header (tolerante a BOM).
func colIndex(header []string, name string) int {
	for i, h := range header {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\uFEFF")
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

func readHeader(r *csv.Reader, file string, required ...string) (map[string]int, error) {
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("leyendo header de %s: %w", file, err)
	}
	idx := make(map[string]int, len(required))
	for _, name := range required {
		i := colIndex(header, name)
		if i < 0 {
			return nil, &ErrSchema{File: file, Column: name}
		}
		idx[name] = i
	}
	return idx, nil
}

// LoadBooks lee Books.csv (ISBN;Title;Author;Year;Publisher;Image-URL-M).
func LoadBooks(path string) ([]models.BookDoc, *LoadReport, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	idx, err := readHeader(r, path,
		"ISBN", "Book-Title", "Book-Author", "Year-Of-Publication", "Publisher", "Image-URL-M")
	if err != nil {
		return nil, nil, err
	}

	rep := &LoadReport{}
	var books []models.BookDoc

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rep.Skipped++
			continue
		}
		maxIdx := idx["Image-URL-M"]
		if idx["Publisher"] > maxIdx {
			maxIdx = idx["Publisher"]
		}
		if len(rec) <= maxIdx {
			rep.Skipped++
			continue
		}

		isbn := strings.TrimSpace(rec[idx["ISBN"]])
		title := strings.TrimSpace(rec[idx["Book-Title"]])
		if isbn == "" || title == "" {
			rep.Skipped++
			continue
		}

		books = append(books, models.BookDoc{
			ISBN:      isbn,
			Title:     title,
			Author:    strings.TrimSpace(rec[idx["Book-Author"]]),
			Year:      strings.TrimSpace(rec[idx["Year-Of-Publication"]]),
			Publisher: strings.TrimSpace(rec[idx["Publisher"]]),
			ImageURL:  strings.TrimSpace(rec[idx["Image-URL-M"]]),
		})
		rep.Rows++
	}
	return books, rep, nil
}

// LoadUsers lee Users.csv (User-ID;Location;Age). Age puede venir vacío.
func LoadUsers(path string) ([]models.UserDoc, *LoadReport, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	idx, err := readHeader(r, path, "User-ID", "Location", "Age")
	if err != nil {
		return nil, nil, err
	}

	rep := &LoadReport{}
	var users []models.UserDoc

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(rec) <= idx["Age"] {
			rep.Skipped++
			continue
		}

		uid, err := strconv.Atoi(strings.TrimSpace(rec[idx["User-ID"]]))
		if err != nil {
			rep.Skipped++
			continue
		}

		u := models.UserDoc{
			UserID:   uid,
			Location: strings.TrimSpace(rec[idx["Location"]]),
		}
		if age, err := strconv.Atoi(strings.TrimSpace(rec[idx["Age"]])); err == nil {
			u.Age = &age
		}
		users = append(users, u)
		rep.Rows++
	}
	return users, rep, nil
}

// LoadRatings lee Ratings.csv (User-ID;ISBN;Book-Rating). El rating se
// conserva como texto: la coerción numérica es responsabilidad de Enrich.
func LoadRatings(path string) ([]models.RatingRow, *LoadReport, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	idx, err := readHeader(r, path, "User-ID", "ISBN", "Book-Rating")
	if err != nil {
		return nil, nil, err
	}

	rep := &LoadReport{}
	var rows []models.RatingRow

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(rec) <= idx["Book-Rating"] {
			rep.Skipped++
			continue
		}

		uid, err := strconv.Atoi(strings.TrimSpace(rec[idx["User-ID"]]))
		if err != nil {
			rep.Skipped++
			continue
		}
		isbn := strings.TrimSpace(rec[idx["ISBN"]])
		if isbn == "" {
			rep.Skipped++
			continue
		}

		rows = append(rows, models.RatingRow{
			UserID: uid,
			ISBN:   isbn,
			Rating: strings.TrimSpace(rec[idx["Book-Rating"]]),
		})
		rep.Rows++
	}
	return rows, rep, nil
}
