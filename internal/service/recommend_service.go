package service

import (
	"context"
	"fmt"
	"log"

	"librosml-tf/internal/cache"
	"librosml-tf/internal/models"
	"librosml-tf/internal/recsys"
)

// RecommendService expone el índice a los handlers y le pone un cache
// Redis encima. El índice en sí es de solo lectura, así que no hay nada
// que sincronizar acá.
type RecommendService struct {
	index *recsys.Index
}

func NewRecommendService(ix *recsys.Index) *RecommendService {
	return &RecommendService{index: ix}
}

type RecRequest struct {
	Title   string
	K       int
	Refresh bool
}

func cacheKey(req RecRequest) string {
	// cachea por título + k (refresh solo decide si se usa el cache)
	return fmt.Sprintf("rec:book:%s:k:%d", req.Title, req.K)
}

// Recommend consulta el índice con cache read-through (TTL 1 hora).
// Los errores del índice (NotFound / NotLoaded) pasan tal cual para que
// el handler los mapee a 404 / 503.
func (s *RecommendService) Recommend(ctx context.Context, req RecRequest) ([]models.RecommendedBook, error) {
	if req.K <= 0 {
		req.K = recsys.DefaultK
	} else if req.K > recsys.MaxK {
		req.K = recsys.MaxK
	}

	var cached []models.RecommendedBook
	if !req.Refresh {
		if ok, err := cache.GetJSON(ctx, cacheKey(req), &cached); err == nil && ok {
			return cached, nil
		}
	}

	items, err := s.index.Recommend(req.Title, req.K)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, cacheKey(req), items, 60*60); err != nil {
		log.Printf("error cacheando recomendación en Redis: %v", err)
	}
	return items, nil
}

// Search no pasa por Redis: es un escaneo barato en memoria.
func (s *RecommendService) Search(query string, limit int) []models.BookSummary {
	return s.index.Search(query, limit)
}

// Popular usa cache porque es la respuesta más pedida y nunca cambia
// entre builds.
func (s *RecommendService) Popular(ctx context.Context, limit int) ([]models.PopularBook, error) {
	key := fmt.Sprintf("popular:limit:%d", limit)

	var cached []models.PopularBook
	if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	entries := s.index.Popular(limit)
	if err := cache.SetJSON(ctx, key, entries, 60*60); err != nil {
		log.Printf("error cacheando populares en Redis: %v", err)
	}
	return entries, nil
}

func (s *RecommendService) Health() models.IndexHealth {
	return s.index.Health()
}

func (s *RecommendService) IsLoaded() bool {
	return s.index.IsLoaded()
}
