package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const (
	insertProductSQL = `INSERT INTO products (doc, fetched_at) VALUES ($1, $2);`

	listRecentProductsSQL = `SELECT doc
    FROM products
    ORDER BY fetched_at DESC, id DESC
    LIMIT $1;`

	countProductsSQL = `SELECT COUNT(*) FROM products;`
)

// ProductStore defines operations for product document persistence.
type ProductStore interface {
	InsertProducts(ctx context.Context, docs []ProductDocument) error
	ListRecentProducts(ctx context.Context, limit int) ([]ProductDocument, error)
	CountProducts(ctx context.Context) (int64, error)
}

// InsertProducts bulk-inserts product documents. Empty input is a no-op.
func (s *Store) InsertProducts(ctx context.Context, docs []ProductDocument) error {
	if len(docs) == 0 {
		return nil
	}

	pool, err := s.getPool(ctx)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, doc := range docs {
		payload, marshalErr := json.Marshal(doc)
		if marshalErr != nil {
			return fmt.Errorf("marshal product document: %w", marshalErr)
		}
		batch.Queue(insertProductSQL, payload, doc.FetchedAt)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()

	for range docs {
		if _, execErr := results.Exec(); execErr != nil {
			return fmt.Errorf("insert product document: %w", execErr)
		}
	}
	return nil
}

// ListRecentProducts lists the most recently persisted documents.
func (s *Store) ListRecentProducts(ctx context.Context, limit int) ([]ProductDocument, error) {
	pool, err := s.getPool(ctx)
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentProductsSQL, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent products: %w", queryErr)
	}
	defer rows.Close()

	docs := make([]ProductDocument, 0, limit)
	for rows.Next() {
		var payload []byte
		if scanErr := rows.Scan(&payload); scanErr != nil {
			return nil, scanErr
		}
		var doc ProductDocument
		if unmarshalErr := json.Unmarshal(payload, &doc); unmarshalErr != nil {
			return nil, fmt.Errorf("unmarshal product document: %w", unmarshalErr)
		}
		docs = append(docs, doc)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return docs, nil
}

// CountProducts counts stored documents.
func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	pool, err := s.getPool(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if scanErr := pool.QueryRow(ctx, countProductsSQL).Scan(&count); scanErr != nil {
		return 0, fmt.Errorf("count products: %w", scanErr)
	}
	return count, nil
}
