package main

/*
BUILDER OFFLINE (una sola pasada batch)

Lee los tres CSV crudos (Books / Users / Ratings), limpia, construye:
  1) tabla de populares        (count + promedio por título, min_votes, top_n)
  2) matriz de co-ratings      (usuarios activos × libros famosos, celdas en 0)
  3) matriz de similitud coseno (paralela por filas)
y persiste los cuatro artefactos en Mongo. La API los carga al arrancar;
no hay rebuild en caliente (rebuild = reiniciar la API).

Flags (0 / vacío = tomar el valor de config/env):
  --min_votes=250   --top_n=50   --active_user_min=200   --famous_book_min=50
  --workers=0       --report=artifacts/build_report.txt
*/

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"librosml-tf/internal/config"
	"librosml-tf/internal/db"
	"librosml-tf/internal/pipeline"
	"librosml-tf/internal/repository"
	"librosml-tf/internal/service"
)

func main() {
	var minVotes, topN, activeUserMin, famousBookMin, workers int
	var reportPath string

	flag.IntVar(&minVotes, "min_votes", 0, "mínimo de votos para populares (0 = config)")
	flag.IntVar(&topN, "top_n", 0, "tamaño de la tabla de populares (0 = config)")
	flag.IntVar(&activeUserMin, "active_user_min", 0, "usuario activo: ratings > N (0 = config)")
	flag.IntVar(&famousBookMin, "famous_book_min", 0, "libro famoso: raters >= N (0 = config)")
	flag.IntVar(&workers, "workers", 0, "goroutines para similitud (0 = NumCPU)")
	flag.StringVar(&reportPath, "report", "artifacts/build_report.txt", "ruta del reporte")
	flag.Parse()

	cfg := config.Load()
	db.InitMongo(cfg)

	p := pipeline.ParamsFromConfig(cfg)
	if minVotes > 0 {
		p.MinVotes = minVotes
	}
	if topN > 0 {
		p.TopN = topN
	}
	if activeUserMin > 0 {
		p.ActiveUserMin = activeUserMin
	}
	if famousBookMin > 0 {
		p.FamousBookMin = famousBookMin
	}
	if workers > 0 {
		p.Workers = workers
	}

	repo := repository.NewArtifactRepository()
	buildSvc := service.NewBuildService(cfg, repo)

	// log de avance de la similitud cada ~10% (es la etapa larga)
	var lastDecile int64 = -1
	progress := func(done, total int) {
		if total == 0 {
			return
		}
		dec := int64(done * 10 / total)
		if atomic.SwapInt64(&lastDecile, dec) != dec {
			log.Printf("[builder] similitud: %d/%d filas (%d%%)", done, total, done*100/total)
		}
	}

	stats, err := buildSvc.Run(context.Background(), p, progress)
	if err != nil {
		log.Fatalf("[builder] build falló: %v", err)
	}

	rep := fmt.Sprintf(
		`== BUILD OFFLINE LIBROSML ==
Ratings leídos        :   %d
Enriched (post-clean) :   %d
Descartes sin libro   :   %d
Descartes rating malo :   %d
Populares             :   %d entradas
Matriz co-ratings     :   %d libros × %d usuarios
Parámetros            :   min_votes=%d top_n=%d active>%d famous>=%d
Tiempo total          :   %s
`,
		stats.Clean.TotalRatings, stats.Clean.Enriched,
		stats.Clean.DroppedNoBook, stats.Clean.DroppedBadRating,
		stats.PopularCount, stats.MatrixBooks, stats.MatrixUsers,
		p.MinVotes, p.TopN, p.ActiveUserMin, p.FamousBookMin,
		stats.ElapsedStr)

	if err := os.MkdirAll(filepath.Dir(reportPath), 0o755); err == nil {
		_ = os.WriteFile(reportPath, []byte(rep), 0o644)
	}
	fmt.Print(rep)
	fmt.Printf("[OK] artefactos en Mongo, reporte -> %s\n", reportPath)
}
