// Package memory backend de persistencia en proceso. Guarda los blobs de las colecciones
// en un mapa y emula transacciones: los cambios de Run se publican solo si fn termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/nexus-procurement/internal/application/procurement"
	"github.com/jhoicas/nexus-procurement/internal/domain/repository"
	"github.com/jhoicas/nexus-procurement/internal/infrastructure/collections"
)

var _ procurement.TxRunner = (*Database)(nil)

// Database almacén de blobs en memoria con semántica transaccional.
type Database struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	writeErr error
}

// NewDatabase crea una base vacía.
func NewDatabase() *Database {
	return &Database{blobs: make(map[string][]byte)}
}

// Run ejecuta fn sobre una transacción: lecturas ven lo escrito en la misma transacción,
// y nada se publica si fn falla.
func (d *Database) Run(ctx context.Context, fn func(repo repository.CollectionRepository) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	tx := &txBlobs{db: d, staged: make(map[string][]byte)}
	if err := fn(collections.NewRepository(tx)); err != nil {
		return err
	}
	for k, v := range tx.staged {
		d.blobs[k] = v
	}
	return nil
}

// Put escribe un blob crudo fuera de transacción (carga inicial, tests).
func (d *Database) Put(key string, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blobs[key] = append([]byte(nil), data...)
}

// Raw devuelve una copia del blob guardado bajo key.
func (d *Database) Raw(key string) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	data, ok := d.blobs[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// FailWrites hace que toda escritura posterior devuelva err. nil restablece el comportamiento normal.
func (d *Database) FailWrites(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writeErr = err
}

// txBlobs vista transaccional; se usa con d.mu tomado.
type txBlobs struct {
	db     *Database
	staged map[string][]byte
}

func (t *txBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	if data, ok := t.staged[key]; ok {
		return data, nil
	}
	return t.db.blobs[key], nil
}

func (t *txBlobs) Put(ctx context.Context, key string, data []byte) error {
	if t.db.writeErr != nil {
		return t.db.writeErr
	}
	t.staged[key] = append([]byte(nil), data...)
	return nil
}
