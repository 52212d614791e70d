package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"librosml-tf/internal/service"
)

type BookHandler struct {
	svc *service.RecommendService
}

func NewBookHandler(s *service.RecommendService) *BookHandler {
	return &BookHandler{svc: s}
}

// @Summary Búsqueda de libros por título o autor
// @Tags books
// @Produce json
// @Param q query string true "texto a buscar (substring, case-insensitive)"
// @Param limit query int false "máximo de resultados (default 20)"
// @Success 200 {array} models.BookSummary
// @Router /books/search [get]
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results := h.svc.Search(q, limit)
	_ = json.NewEncoder(w).Encode(results)
}

// @Summary Top de libros populares (precalculado en el build offline)
// @Tags books
// @Produce json
// @Param limit query int false "máximo de entradas (default 50)"
// @Success 200 {array} models.PopularBook
// @Router /books/popular [get]
func (h *BookHandler) Popular(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.svc.Popular(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(entries)
}
