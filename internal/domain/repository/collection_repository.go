package repository

import (
	"context"

	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

// Claves de las cuatro colecciones persistidas. Cada una se guarda completa en cada cambio.
const (
	CollectionProducts     = "nexus_products"
	CollectionSuppliers    = "nexus_suppliers"
	CollectionOrders       = "nexus_orders"
	CollectionRequisitions = "nexus_reqs"
)

// CollectionRepository define el puerto de persistencia de las colecciones (DIP).
// Load* aplica la migración de carga (producto sin estado → ACTIVE).
// Una colección que nunca se guardó se devuelve vacía, sin error.
type CollectionRepository interface {
	LoadProducts(ctx context.Context) ([]entity.Product, error)
	LoadSuppliers(ctx context.Context) ([]entity.Supplier, error)
	LoadRequisitions(ctx context.Context) ([]entity.PurchaseRequisition, error)
	LoadPurchaseOrders(ctx context.Context) ([]entity.PurchaseOrder, error)

	SaveProducts(ctx context.Context, products []entity.Product) error
	SaveSuppliers(ctx context.Context, suppliers []entity.Supplier) error
	SaveRequisitions(ctx context.Context, requisitions []entity.PurchaseRequisition) error
	SavePurchaseOrders(ctx context.Context, orders []entity.PurchaseOrder) error
}
