package main

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "librosml-tf/docs" // swagger docs

	"librosml-tf/internal/cache"
	"librosml-tf/internal/config"
	"librosml-tf/internal/db"
	"librosml-tf/internal/handler"
	"librosml-tf/internal/pipeline"
	"librosml-tf/internal/recsys"
	"librosml-tf/internal/repository"
	"librosml-tf/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title LibrosML Book Recommender API
// @version 1.0
// @description API de recomendación de libros (popularidad + item-item coseno, Mongo, Redis)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	repo := repository.NewArtifactRepository()

	// ==================================================
	// Carga única de los artefactos del modelo (startup).
	// El índice queda inmutable todo el proceso: rebuild = reiniciar.
	// ==================================================
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	arts, err := repo.LoadAll(ctx)
	cancel()
	if err != nil {
		log.Fatalf("[api] error cargando artefactos del modelo: %v", err)
	}

	index := recsys.NewIndex(arts)
	h := index.Health()
	log.Printf("[api] modelo cargado: popular=%v matrix=%v books=%v similarity=%v",
		h.Popular, h.Matrix, h.Books, h.Similarity)
	if !index.IsLoaded() {
		log.Println("[api] ⚠ modelo incompleto: corre cmd/builder antes de servir recomendaciones")
	}

	// services
	authSvc := service.NewAuthService(cfg)
	recSvc := service.NewRecommendService(index)
	buildSvc := service.NewBuildService(cfg, repo)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	healthH := handler.NewHealthHandler(recSvc)
	bookH := handler.NewBookHandler(recSvc)
	recH := handler.NewRecommendHandler(recSvc)
	adminH := handler.NewAdminHandler(buildSvc, pipeline.ParamsFromConfig(cfg))

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/", healthH.Home)
	r.Get("/health", healthH.Health)

	r.Post("/auth/login", authH.Login)

	// Libros (públicas)
	r.Get("/books/search", bookH.Search)
	r.Get("/books/popular", bookH.Popular)
	r.Get("/books/{title}/recommendations", recH.GetRecommendations)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	r.Group(func(r chi.Router) {
		r.Use(handler.JWTAuth(cfg.JWTSecret))
		r.Use(handler.AdminOnly())

		// mantenimiento del modelo (rebuild HTTP y WS con progreso)
		handler.MountAdminRoutes(r, adminH)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
