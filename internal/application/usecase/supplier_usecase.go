package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/nexus-procurement/internal/application/dto"
	"github.com/jhoicas/nexus-procurement/internal/application/procurement"
	"github.com/jhoicas/nexus-procurement/internal/domain"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

// SupplierUseCase casos de uso CRUD de proveedores.
type SupplierUseCase struct {
	store *procurement.Store
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(store *procurement.Store) *SupplierUseCase {
	return &SupplierUseCase{store: store}
}

func (uc *SupplierUseCase) List() []dto.SupplierResponse {
	suppliers := uc.store.Suppliers()
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, toSupplierResponse(s))
	}
	return out
}

func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	created, err := uc.store.AddSupplier(ctx, supplierFromRequest("", in))
	if err != nil {
		return nil, err
	}
	out := toSupplierResponse(created)
	return &out, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, ok := uc.store.Supplier(id)
	if !ok {
		return nil, fmt.Errorf("proveedor %s: %w", id, domain.ErrNotFound)
	}
	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.ContactEmail != nil {
		s.ContactEmail = strings.TrimSpace(*in.ContactEmail)
	}
	if in.LeadTimeDays != nil {
		s.LeadTimeDays = *in.LeadTimeDays
	}
	updated, err := uc.store.UpdateSupplier(ctx, s)
	if err != nil {
		return nil, err
	}
	out := toSupplierResponse(updated)
	return &out, nil
}

// Delete elimina el proveedor sin tocar productos, requisiciones ni órdenes que lo referencian.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.DeleteSupplier(ctx, id)
}

func supplierFromRequest(id string, in dto.CreateSupplierRequest) entity.Supplier {
	return entity.Supplier{
		ID:           strings.TrimSpace(id),
		Name:         strings.TrimSpace(in.Name),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		LeadTimeDays: in.LeadTimeDays,
	}
}
