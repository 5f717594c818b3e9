package collections

import (
	"context"
	"fmt"

	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
	"github.com/jhoicas/nexus-procurement/internal/domain/repository"
)

// Blobs acceso clave → blob JSON sobre el que se monta el repositorio de colecciones.
// Get devuelve (nil, nil) si la clave nunca se guardó.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

var _ repository.CollectionRepository = (*Repository)(nil)

// Repository implementa repository.CollectionRepository guardando cada colección como un blob.
type Repository struct {
	blobs Blobs
}

// NewRepository construye el repositorio sobre un almacén de blobs.
func NewRepository(blobs Blobs) *Repository {
	return &Repository{blobs: blobs}
}

func (r *Repository) load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.blobs.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", key, err)
	}
	return data, nil
}

func (r *Repository) save(ctx context.Context, key string, data []byte, err error) error {
	if err != nil {
		return fmt.Errorf("codificar %s: %w", key, err)
	}
	if err := r.blobs.Put(ctx, key, data); err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	return nil
}

func (r *Repository) LoadProducts(ctx context.Context) ([]entity.Product, error) {
	data, err := r.load(ctx, repository.CollectionProducts)
	if err != nil {
		return nil, err
	}
	return DecodeProducts(data)
}

func (r *Repository) LoadSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	data, err := r.load(ctx, repository.CollectionSuppliers)
	if err != nil {
		return nil, err
	}
	return DecodeSuppliers(data)
}

func (r *Repository) LoadRequisitions(ctx context.Context) ([]entity.PurchaseRequisition, error) {
	data, err := r.load(ctx, repository.CollectionRequisitions)
	if err != nil {
		return nil, err
	}
	return DecodeRequisitions(data)
}

func (r *Repository) LoadPurchaseOrders(ctx context.Context) ([]entity.PurchaseOrder, error) {
	data, err := r.load(ctx, repository.CollectionOrders)
	if err != nil {
		return nil, err
	}
	return DecodePurchaseOrders(data)
}

func (r *Repository) SaveProducts(ctx context.Context, products []entity.Product) error {
	data, err := EncodeProducts(products)
	return r.save(ctx, repository.CollectionProducts, data, err)
}

func (r *Repository) SaveSuppliers(ctx context.Context, suppliers []entity.Supplier) error {
	data, err := EncodeSuppliers(suppliers)
	return r.save(ctx, repository.CollectionSuppliers, data, err)
}

func (r *Repository) SaveRequisitions(ctx context.Context, requisitions []entity.PurchaseRequisition) error {
	data, err := EncodeRequisitions(requisitions)
	return r.save(ctx, repository.CollectionRequisitions, data, err)
}

func (r *Repository) SavePurchaseOrders(ctx context.Context, orders []entity.PurchaseOrder) error {
	data, err := EncodePurchaseOrders(orders)
	return r.save(ctx, repository.CollectionOrders, data, err)
}
