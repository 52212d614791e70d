package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"librosml-tf/internal/recsys"
	"librosml-tf/internal/service"

	"github.com/go-chi/chi/v5"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

// @Summary Recomendaciones por similitud para un libro
// @Tags recommend
// @Produce json
// @Param title path string true "título exacto del libro"
// @Param k query int false "cantidad de recomendaciones (default 4, máx 20)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "título fuera del índice, con sugerencias"
// @Failure 503 {string} string "modelo no cargado"
// @Router /books/{title}/recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	title := chi.URLParam(r, "title")
	if dec, err := url.PathUnescape(title); err == nil {
		title = dec
	}
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))
	refresh := r.URL.Query().Get("refresh") == "true"

	items, err := h.svc.Recommend(r.Context(), service.RecRequest{
		Title:   title,
		K:       k,
		Refresh: refresh,
	})

	switch {
	case errors.Is(err, recsys.ErrNotFound):
		// el caso real más común: el título se filtró en el build o no
		// existe; devolvemos sugerencias para el "did you mean"
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":       "libro no encontrado en el índice",
			"title":       title,
			"suggestions": h.svc.Search(title, 5),
		})
		return
	case errors.Is(err, recsys.ErrNotLoaded):
		http.Error(w, "modelo no cargado", http.StatusServiceUnavailable)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"input_book":      title,
		"recommendations": items,
	})
}
