package ports

import (
	"context"

	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

// PurchaseOrderDocument genera la representación imprimible (PDF) de una orden de compra.
// supplier es nil cuando la orden apunta a un proveedor que ya no existe.
// productNames traduce productId → nombre; las líneas sin nombre muestran el id.
type PurchaseOrderDocument interface {
	GeneratePurchaseOrderPDF(
		ctx context.Context,
		order entity.PurchaseOrder,
		supplier *entity.Supplier,
		productNames map[string]string,
	) ([]byte, error)
}
