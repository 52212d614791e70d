package pipeline

import (
	"context"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simMatrix(t *testing.T, rows [][]float64, workers int) [][]float64 {
	t.Helper()
	titles := make([]string, len(rows))
	for i := range titles {
		titles[i] = string(rune('A' + i))
	}
	users := make([]int, 0)
	if len(rows) > 0 {
		users = make([]int, len(rows[0]))
		for j := range users {
			users[j] = j + 1
		}
	}
	m := NewMatrix(titles, users, rows)

	sims, err := CosineSimilarity(context.Background(), m, workers, nil)
	require.NoError(t, err)
	return sims
}

func TestCosineSimilarityMatchesNaiveDefinition(t *testing.T) {
	rows := [][]float64{
		{1, 2, 0, 4},
		{0, 1, 1, 0},
		{3, 0, 0, 1},
	}
	sims := simMatrix(t, rows, 2)

	// sim(0,1) a mano: dot=2, |a|=sqrt(21), |b|=sqrt(2)
	want := 2 / (math.Sqrt(21) * math.Sqrt(2))
	assert.InDelta(t, want, sims[0][1], 1e-12)
}

func TestCosineSimilaritySymmetricWithUnitDiagonal(t *testing.T) {
	rows := [][]float64{
		{5, 0, 3, 0, 1},
		{0, 2, 0, 4, 0},
		{1, 1, 1, 1, 1},
		{0, 0, 7, 0, 2},
	}
	sims := simMatrix(t, rows, 3)

	for i := range sims {
		assert.InDelta(t, 1.0, sims[i][i], 1e-12, "diagonal en fila %d", i)
		for j := range sims[i] {
			assert.InDelta(t, sims[j][i], sims[i][j], 1e-12, "simetría (%d,%d)", i, j)
		}
	}
}

func TestCosineSimilarityZeroVectorGivesZeroNotNaN(t *testing.T) {
	rows := [][]float64{
		{1, 2, 3},
		{0, 0, 0}, // vector nulo
		{3, 2, 1},
	}
	sims := simMatrix(t, rows, 1)

	assert.Equal(t, 0.0, sims[0][1])
	assert.Equal(t, 0.0, sims[1][0])
	assert.Equal(t, 0.0, sims[1][1]) // ni siquiera la diagonal
	for i := range sims {
		for j := range sims[i] {
			assert.False(t, math.IsNaN(sims[i][j]), "NaN en (%d,%d)", i, j)
		}
	}
}

func TestCosineSimilarityIdenticalRowsGiveOne(t *testing.T) {
	rows := [][]float64{
		{4, 0, 6, 2},
		{4, 0, 6, 2}, // idéntica a la fila 0
		{0, 1, 0, 0},
	}
	sims := simMatrix(t, rows, 2)
	assert.InDelta(t, 1.0, sims[0][1], 1e-12)
}

func TestCosineSimilarityParallelMatchesSequential(t *testing.T) {
	rows := [][]float64{
		{1, 0, 2, 0, 3, 0},
		{0, 4, 0, 5, 0, 6},
		{7, 8, 0, 0, 1, 2},
		{0, 0, 3, 4, 0, 0},
		{5, 0, 0, 6, 7, 0},
	}

	seq := simMatrix(t, rows, 1)
	par := simMatrix(t, rows, 4)

	// cada celda se escribe una sola vez: el paralelo es bit a bit igual
	assert.Equal(t, seq, par)
}

func TestCosineSimilarityCancellation(t *testing.T) {
	rows := make([][]float64, 50)
	for i := range rows {
		rows[i] = []float64{float64(i), 1, 2}
	}
	titles := make([]string, len(rows))
	for i := range titles {
		titles[i] = string(rune('a' + i%26))
	}
	m := NewMatrix(titles, []int{1, 2, 3}, rows)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancelado antes de empezar

	_, err := CosineSimilarity(ctx, m, 2, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCosineSimilarityProgressReachesTotal(t *testing.T) {
	rows := [][]float64{
		{1, 2}, {3, 4}, {5, 6}, {7, 8},
	}
	titles := []string{"A", "B", "C", "D"}
	m := NewMatrix(titles, []int{1, 2}, rows)

	var calls, maxDone int64
	progress := func(done, total int) {
		atomic.AddInt64(&calls, 1)
		for {
			cur := atomic.LoadInt64(&maxDone)
			if int64(done) <= cur || atomic.CompareAndSwapInt64(&maxDone, cur, int64(done)) {
				break
			}
		}
		assert.Equal(t, 4, total)
	}

	_, err := CosineSimilarity(context.Background(), m, 2, progress)
	require.NoError(t, err)
	assert.Equal(t, int64(4), atomic.LoadInt64(&calls))
	assert.Equal(t, int64(4), atomic.LoadInt64(&maxDone))
}
