package pipeline

import (
	"context"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
)

// ProgressFunc recibe cuántas filas de similitud ya se calcularon.
// Sirve para reportar avance cuando el build corre como job largo
// (p.e. por el endpoint admin con WebSocket).
type ProgressFunc func(done, total int)

// CosineSimilarity calcula la matriz de similitud coseno R×R entre las
// filas de la matriz de co-ratings: sim = dot(i,j) / (‖i‖·‖j‖).
// Si alguno de los vectores tiene norma cero la similitud es 0 (nunca
// NaN ni error). La salida es simétrica y con diagonal 1 para filas no
// nulas.
//
// Es el paso más caro del build, O(R²·C), así que se reparte por filas
// entre workers goroutines. El resultado es numéricamente idéntico al
// cálculo secuencial: cada celda se escribe exactamente una vez.
func CosineSimilarity(ctx context.Context, m *Matrix, workers int, progress ProgressFunc) ([][]float64, error) {
	n := len(m.Rows)
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	norms := make([]float64, n)
	for i, row := range m.Rows {
		var s float64
		for _, v := range row {
			s += v * v
		}
		norms[i] = math.Sqrt(s)
	}

	sims := make([][]float64, n)
	for i := range sims {
		sims[i] = make([]float64, n)
	}

	var done int64
	var canceled atomic.Bool
	var wg sync.WaitGroup

	// cada worker toma las filas i ≡ w (mod workers) y llena el triángulo
	// superior; la celda espejo se escribe en la misma pasada
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < n; i += workers {
				select {
				case <-ctx.Done():
					canceled.Store(true)
					return
				default:
				}

				ri, ni := m.Rows[i], norms[i]
				if ni > 0 {
					sims[i][i] = 1
				}
				for j := i + 1; j < n; j++ {
					nj := norms[j]
					if ni == 0 || nj == 0 {
						continue // vector nulo => similitud 0
					}
					rj := m.Rows[j]
					var dot float64
					for c := range ri {
						dot += ri[c] * rj[c]
					}
					s := dot / (ni * nj)
					sims[i][j] = s
					sims[j][i] = s
				}

				d := atomic.AddInt64(&done, 1)
				if progress != nil {
					progress(int(d), n)
				}
			}
		}(w)
	}
	wg.Wait()

	if canceled.Load() {
		return nil, ctx.Err()
	}
	return sims, nil
}
