package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"librosml-tf/internal/db"
	"librosml-tf/internal/models"
	"librosml-tf/internal/pipeline"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Colecciones de artefactos. Cada una es un blob auto-contenido:
// el índice se reconstruye solo con estas cuatro (la matriz usa dos
// colecciones: meta con el orden de filas/columnas + las filas densas).
const (
	collPopular    = "popular_books"
	collCatalog    = "catalog"
	collMatrixMeta = "matrix_meta"
	collMatrixRows = "matrix_rows"
	collSimilarity = "similarity_rows"

	matrixMetaID = "corating"
)

// ArtifactRepository persiste y recupera los cuatro artefactos del modelo.
type ArtifactRepository struct {
	mdb *mongo.Database
}

func NewArtifactRepository() *ArtifactRepository {
	return &ArtifactRepository{mdb: db.DB()}
}

// replaceAll deja la colección exactamente con `docs` (drop + insert).
// El build es wholesale: nunca publicamos un artefacto a medias encima
// de otro viejo.
func (r *ArtifactRepository) replaceAll(ctx context.Context, coll string, docs []any) error {
	c := r.mdb.Collection(coll)
	if err := c.Drop(ctx); err != nil {
		return fmt.Errorf("drop %s: %w", coll, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := c.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %w", coll, err)
	}
	return nil
}

// ---------------------- POPULARES ----------------------

func (r *ArtifactRepository) SavePopular(ctx context.Context, entries []models.PopularBook) error {
	docs := make([]any, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, e)
	}
	return r.replaceAll(ctx, collPopular, docs)
}

func (r *ArtifactRepository) LoadPopular(ctx context.Context) ([]models.PopularBook, error) {
	opts := options.Find().SetSort(bson.D{{Key: "rank", Value: 1}})
	cur, err := r.mdb.Collection(collPopular).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	// nil cuando la colección está vacía: ausencia se señaliza igual que en
	// LoadMatrix/LoadSimilarity, para que Health no reporte populares en una
	// base recién creada
	var out []models.PopularBook
	for cur.Next(ctx) {
		var e models.PopularBook
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}

// ---------------------- CATÁLOGO ----------------------

func (r *ArtifactRepository) SaveCatalog(ctx context.Context, books []models.BookDoc) error {
	docs := make([]any, 0, len(books))
	for _, b := range books {
		docs = append(docs, b)
	}
	return r.replaceAll(ctx, collCatalog, docs)
}

func (r *ArtifactRepository) LoadCatalog(ctx context.Context) ([]models.BookDoc, error) {
	// orden estable por ISBN para que el catálogo cargado sea reproducible
	opts := options.Find().SetSort(bson.D{{Key: "isbn", Value: 1}})
	cur, err := r.mdb.Collection(collCatalog).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BookDoc
	for cur.Next(ctx) {
		var b models.BookDoc
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, cur.Err()
}

// ---------------------- MATRIZ DE CO-RATINGS ----------------------

func (r *ArtifactRepository) SaveMatrix(ctx context.Context, m *pipeline.Matrix) error {
	meta := models.MatrixMetaDoc{
		ID:        matrixMetaID,
		Titles:    m.Titles,
		UserIDs:   m.UserIDs,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := r.replaceAll(ctx, collMatrixMeta, []any{meta}); err != nil {
		return err
	}

	docs := make([]any, 0, len(m.Rows))
	for i, row := range m.Rows {
		docs = append(docs, models.MatrixRowDoc{
			BIdx:    i,
			Title:   m.Titles[i],
			Ratings: row,
		})
	}
	return r.replaceAll(ctx, collMatrixRows, docs)
}

func (r *ArtifactRepository) LoadMatrix(ctx context.Context) (*pipeline.Matrix, error) {
	var meta models.MatrixMetaDoc
	err := r.mdb.Collection(collMatrixMeta).
		FindOne(ctx, bson.M{"_id": matrixMetaID}).Decode(&meta)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cur, err := r.mdb.Collection(collMatrixRows).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := make([][]float64, len(meta.Titles))
	for cur.Next(ctx) {
		var doc models.MatrixRowDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		if doc.BIdx < 0 || doc.BIdx >= len(rows) {
			return nil, fmt.Errorf("matrix_rows: bIdx %d fuera de rango (filas=%d)", doc.BIdx, len(rows))
		}
		rows[doc.BIdx] = doc.Ratings
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if row == nil {
			return nil, fmt.Errorf("matrix_rows: falta la fila %d (%q)", i, meta.Titles[i])
		}
	}

	return pipeline.NewMatrix(meta.Titles, meta.UserIDs, rows), nil
}

// ---------------------- SIMILITUD ----------------------

func (r *ArtifactRepository) SaveSimilarity(ctx context.Context, titles []string, sims [][]float64) error {
	docs := make([]any, 0, len(sims))
	for i, row := range sims {
		docs = append(docs, models.SimilarityRowDoc{
			BIdx:  i,
			Title: titles[i],
			Sims:  row,
		})
	}
	return r.replaceAll(ctx, collSimilarity, docs)
}

func (r *ArtifactRepository) LoadSimilarity(ctx context.Context) ([][]float64, error) {
	opts := options.Find().SetSort(bson.D{{Key: "bIdx", Value: 1}})
	cur, err := r.mdb.Collection(collSimilarity).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.SimilarityRowDoc
	for cur.Next(ctx) {
		var doc models.SimilarityRowDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].BIdx < docs[j].BIdx })
	sims := make([][]float64, len(docs))
	for i, doc := range docs {
		if doc.BIdx != i {
			return nil, fmt.Errorf("similarity_rows: fila %d tiene bIdx %d", i, doc.BIdx)
		}
		sims[i] = doc.Sims
	}
	return sims, nil
}

// ---------------------- TODO JUNTO ----------------------

// SaveAll persiste los cuatro artefactos de un build.
func (r *ArtifactRepository) SaveAll(ctx context.Context, a *pipeline.Artifacts) error {
	if err := r.SavePopular(ctx, a.Popular); err != nil {
		return err
	}
	if err := r.SaveCatalog(ctx, a.Catalog); err != nil {
		return err
	}
	if err := r.SaveMatrix(ctx, a.Matrix); err != nil {
		return err
	}
	return r.SaveSimilarity(ctx, a.Matrix.Titles, a.Similarity)
}

// LoadAll recupera lo que haya. Artefactos ausentes quedan en nil/vacío;
// el Health del índice reporta cuáles faltan.
func (r *ArtifactRepository) LoadAll(ctx context.Context) (*pipeline.Artifacts, error) {
	popular, err := r.LoadPopular(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargando populares: %w", err)
	}
	catalog, err := r.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargando catálogo: %w", err)
	}
	matrix, err := r.LoadMatrix(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargando matriz: %w", err)
	}
	sims, err := r.LoadSimilarity(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargando similitud: %w", err)
	}

	return &pipeline.Artifacts{
		Popular:    popular,
		Catalog:    catalog,
		Matrix:     matrix,
		Similarity: sims,
	}, nil
}
