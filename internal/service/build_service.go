package service

import (
	"context"
	"fmt"
	"log"

	"librosml-tf/internal/config"
	"librosml-tf/internal/ingest"
	"librosml-tf/internal/pipeline"
	"librosml-tf/internal/repository"
)

// BuildService corre el pipeline offline completo (CSV -> artefactos en
// Mongo). Lo usan cmd/builder y el endpoint admin de rebuild; la API
// sirviendo NO se recarga en caliente: rebuild = reiniciar (los artefactos
// nuevos se cargan en el próximo arranque).
type BuildService struct {
	cfg  *config.Config
	repo *repository.ArtifactRepository
}

func NewBuildService(cfg *config.Config, repo *repository.ArtifactRepository) *BuildService {
	return &BuildService{cfg: cfg, repo: repo}
}

// Run ejecuta ingesta + build + persistencia. progress (puede ser nil)
// recibe el avance de la etapa de similitud, que es la única larga.
func (s *BuildService) Run(ctx context.Context, p pipeline.Params, progress pipeline.ProgressFunc) (*pipeline.BuildStats, error) {
	books, bRep, err := ingest.LoadBooks(s.cfg.BooksCSV)
	if err != nil {
		return nil, fmt.Errorf("cargando libros: %w", err)
	}
	log.Printf("[builder] libros: %d filas ok, %d saltadas", bRep.Rows, bRep.Skipped)

	users, uRep, err := ingest.LoadUsers(s.cfg.UsersCSV)
	if err != nil {
		return nil, fmt.Errorf("cargando usuarios: %w", err)
	}
	log.Printf("[builder] usuarios: %d filas ok, %d saltadas", uRep.Rows, uRep.Skipped)

	ratings, rRep, err := ingest.LoadRatings(s.cfg.RatingsCSV)
	if err != nil {
		return nil, fmt.Errorf("cargando ratings: %w", err)
	}
	log.Printf("[builder] ratings: %d filas ok, %d saltadas", rRep.Rows, rRep.Skipped)

	arts, stats, err := pipeline.Build(ctx, books, users, ratings, p, progress)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveAll(ctx, arts); err != nil {
		return nil, fmt.Errorf("persistiendo artefactos: %w", err)
	}
	log.Printf("[builder] artefactos guardados en Mongo (populares=%d, matriz=%dx%d)",
		stats.PopularCount, stats.MatrixBooks, stats.MatrixUsers)

	return stats, nil
}
