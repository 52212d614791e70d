package handler

import (
	"encoding/json"
	"net/http"

	"librosml-tf/internal/service"
)

type HealthHandler struct {
	svc *service.RecommendService
}

func NewHealthHandler(s *service.RecommendService) *HealthHandler {
	return &HealthHandler{svc: s}
}

// @Summary Healthcheck con estado de los artefactos del modelo
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "healthy"
	if !h.svc.IsLoaded() {
		status = "degraded" // responde pero sin modelo completo
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":        status,
		"models_loaded": h.svc.Health(),
	})
}

// @Summary Descripción de la API + estado del modelo
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	_ = json.NewEncoder(w).Encode(map[string]any{
		"message":       "LibrosML - API de recomendación de libros",
		"status":        "running",
		"models_loaded": h.svc.Health(),
		"endpoints": map[string]string{
			"popular_books":   "/books/popular",
			"recommend_books": "/books/{title}/recommendations",
			"search_books":    "/books/search?q=",
			"health":          "/health",
		},
	})
}
