// Package storage abre el backend de persistencia elegido en STORAGE_BACKEND.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/nexus-procurement/internal/application/procurement"
	"github.com/jhoicas/nexus-procurement/internal/infrastructure/memory"
	"github.com/jhoicas/nexus-procurement/internal/infrastructure/postgres"
	"github.com/jhoicas/nexus-procurement/pkg/config"
)

// Open devuelve el TxRunner del backend configurado y una función para liberarlo.
// Con postgres crea el pool y asegura el esquema antes de devolver.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (procurement.TxRunner, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		log.Warn().Msg("persistencia en memoria: los datos se pierden al reiniciar")
		return memory.NewDatabase(), func() {}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info().Int32("max_conns", pool.Config().MaxConns).Msg("persistencia en PostgreSQL")
		return postgres.NewTxRunner(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("backend de persistencia desconocido: %q", cfg.Storage.Backend)
}
