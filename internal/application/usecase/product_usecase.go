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

// ProductUseCase casos de uso CRUD y siembra del catálogo de productos.
// El stock solo se mueve al recibir órdenes; aquí se puede fijar directamente (ajuste manual).
type ProductUseCase struct {
	store *procurement.Store
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store *procurement.Store) *ProductUseCase {
	return &ProductUseCase{store: store}
}

// List devuelve todos los productos en orden de alta.
func (uc *ProductUseCase) List() []dto.ProductResponse {
	products := uc.store.Products()
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

// Create crea un producto. SKU duplicado → ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p, err := productFromRequest("", in)
	if err != nil {
		return nil, err
	}
	created, err := uc.store.AddProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(created)
	return &out, nil
}

// Update aplica los campos presentes sobre el producto existente.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, ok := uc.store.Product(id)
	if !ok {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.StockLevel != nil {
		p.StockLevel = *in.StockLevel
	}
	if in.ReorderPoint != nil {
		p.ReorderPoint = *in.ReorderPoint
	}
	if in.UnitPrice != nil {
		p.UnitPrice = *in.UnitPrice
	}
	if in.SupplierID != nil {
		p.SupplierID = strings.TrimSpace(*in.SupplierID)
	}
	if in.Status != nil {
		p.Status = entity.ProductStatus(strings.ToUpper(strings.TrimSpace(*in.Status)))
	}
	updated, err := uc.store.UpdateProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(updated)
	return &out, nil
}

// Seed reemplaza catálogo y proveedores con los datos recibidos.
func (uc *ProductUseCase) Seed(ctx context.Context, in dto.SeedRequest) (*dto.SeedResponse, error) {
	suppliers := make([]entity.Supplier, 0, len(in.Suppliers))
	for _, s := range in.Suppliers {
		sup := supplierFromRequest(s.ID, s.CreateSupplierRequest)
		if err := sup.Validate(); err != nil {
			return nil, fmt.Errorf("proveedor %q: %w", s.Name, err)
		}
		suppliers = append(suppliers, sup)
	}
	products := make([]entity.Product, 0, len(in.Products))
	for _, sp := range in.Products {
		p, err := productFromRequest(sp.ID, sp.CreateProductRequest)
		if err != nil {
			return nil, fmt.Errorf("producto %q: %w", sp.SKU, err)
		}
		products = append(products, p)
	}
	if err := uc.store.SeedData(ctx, products, suppliers); err != nil {
		return nil, err
	}
	return &dto.SeedResponse{Products: len(products), Suppliers: len(suppliers)}, nil
}

func productFromRequest(id string, in dto.CreateProductRequest) (entity.Product, error) {
	status := entity.ProductStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	if status == "" {
		status = entity.ProductStatusActive
	}
	p := entity.Product{
		ID:           strings.TrimSpace(id),
		SKU:          strings.TrimSpace(in.SKU),
		Name:         strings.TrimSpace(in.Name),
		Category:     strings.TrimSpace(in.Category),
		StockLevel:   in.StockLevel,
		ReorderPoint: in.ReorderPoint,
		UnitPrice:    in.UnitPrice,
		SupplierID:   strings.TrimSpace(in.SupplierID),
		Status:       status,
	}
	if err := p.Validate(); err != nil {
		return entity.Product{}, err
	}
	return p, nil
}
