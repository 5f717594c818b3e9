package postgres

import (
	"context"
	"fmt"
)

const createCollectionsSQL = `
	CREATE TABLE IF NOT EXISTS collections (
		name       TEXT PRIMARY KEY,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// EnsureSchema crea la tabla collections si no existe. Idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, createCollectionsSQL); err != nil {
		return fmt.Errorf("create collections: %w", err)
	}
	// Verificación rápida: si la tabla sigue sin existir el error es claro al arrancar.
	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM collections`).Scan(&n); err != nil {
		if isUndefinedTable(err) {
			return fmt.Errorf("tabla collections ausente: %w", err)
		}
		return fmt.Errorf("verificar collections: %w", err)
	}
	return nil
}
