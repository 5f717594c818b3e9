package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/nexus-procurement/internal/infrastructure/collections"
)

var _ collections.Blobs = (*BlobStore)(nil)

const (
	selectCollectionSQL = `SELECT payload FROM collections WHERE name = $1`
	upsertCollectionSQL = `
		INSERT INTO collections (name, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`
)

// BlobStore guarda cada colección como una fila JSONB de la tabla collections.
type BlobStore struct {
	q Querier
}

// NewBlobStore construye el adaptador. Pasar pool o tx (Querier).
func NewBlobStore(q Querier) *BlobStore {
	return &BlobStore{q: q}
}

// Get devuelve el payload de la colección; (nil, nil) si no hay fila.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.q.QueryRow(ctx, selectCollectionSQL, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select collection: %w", err)
	}
	return payload, nil
}

// Put reemplaza el payload completo de la colección.
func (s *BlobStore) Put(ctx context.Context, key string, data []byte) error {
	if _, err := s.q.Exec(ctx, upsertCollectionSQL, key, data); err != nil {
		return fmt.Errorf("upsert collection: %w", err)
	}
	return nil
}
