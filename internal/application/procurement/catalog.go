package procurement

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/nexus-procurement/internal/domain"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

// AddProduct agrega un producto. Asigna ID si falta, LastUpdated y estado ACTIVE por defecto.
// El SKU debe ser único.
func (s *Store) AddProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	if p.Status == "" {
		p.Status = entity.ProductStatusActive
	}
	if err := p.Validate(); err != nil {
		return entity.Product{}, err
	}
	err := s.apply(ctx, func(st *state) (dirty, error) {
		if p.ID == "" {
			p.ID = s.newID()
		} else if st.productIndex(p.ID) >= 0 {
			return 0, domain.ErrDuplicate
		}
		if skuTaken(st, p.SKU, "") {
			return 0, domain.ErrDuplicate
		}
		p.LastUpdated = s.now()
		st.products = append(st.products, p)
		return dirtyProducts, nil
	})
	if err != nil {
		return entity.Product{}, err
	}
	return p, nil
}

// UpdateProduct reemplaza un producto existente. Editar el precio no altera las órdenes
// ya creadas: sus líneas guardan su propia foto del precio.
func (s *Store) UpdateProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	if p.Status == "" {
		p.Status = entity.ProductStatusActive
	}
	if err := p.Validate(); err != nil {
		return entity.Product{}, err
	}
	err := s.apply(ctx, func(st *state) (dirty, error) {
		i := st.productIndex(p.ID)
		if i < 0 {
			return 0, fmt.Errorf("producto %s: %w", p.ID, domain.ErrNotFound)
		}
		if skuTaken(st, p.SKU, p.ID) {
			return 0, domain.ErrDuplicate
		}
		p.LastUpdated = s.now()
		st.products[i] = p
		return dirtyProducts, nil
	})
	if err != nil {
		return entity.Product{}, err
	}
	return p, nil
}

func skuTaken(st *state, sku, exceptID string) bool {
	for _, other := range st.products {
		if other.ID != exceptID && strings.EqualFold(other.SKU, sku) {
			return true
		}
	}
	return false
}

// SeedData reemplaza por completo productos y proveedores (no mezcla con lo existente).
// Si ya había datos simplemente se sobrescriben. Ambas colecciones se guardan en la misma transacción.
// Todo o nada: un registro inválido o un ID/SKU repetido rechaza la siembra entera.
func (s *Store) SeedData(ctx context.Context, products []entity.Product, suppliers []entity.Supplier) error {
	now := s.now()
	nextProducts := make([]entity.Product, 0, len(products))
	nextSuppliers := make([]entity.Supplier, 0, len(suppliers))

	supplierIDs := make(map[string]struct{}, len(suppliers))
	for _, sup := range suppliers {
		if err := sup.Validate(); err != nil {
			return fmt.Errorf("proveedor %q: %w", sup.Name, err)
		}
		if sup.ID == "" {
			sup.ID = s.newID()
		}
		if _, dup := supplierIDs[sup.ID]; dup {
			return fmt.Errorf("proveedor %s repetido: %w", sup.ID, domain.ErrDuplicate)
		}
		supplierIDs[sup.ID] = struct{}{}
		nextSuppliers = append(nextSuppliers, sup)
	}

	productIDs := make(map[string]struct{}, len(products))
	skus := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p.Status == "" {
			p.Status = entity.ProductStatusActive
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("producto %q: %w", p.SKU, err)
		}
		if p.ID == "" {
			p.ID = s.newID()
		}
		if _, dup := productIDs[p.ID]; dup {
			return fmt.Errorf("producto %s repetido: %w", p.ID, domain.ErrDuplicate)
		}
		sku := strings.ToLower(p.SKU)
		if _, dup := skus[sku]; dup {
			return fmt.Errorf("SKU %s repetido: %w", p.SKU, domain.ErrDuplicate)
		}
		productIDs[p.ID] = struct{}{}
		skus[sku] = struct{}{}
		if p.LastUpdated.IsZero() {
			p.LastUpdated = now
		}
		nextProducts = append(nextProducts, p)
	}

	err := s.apply(ctx, func(st *state) (dirty, error) {
		st.products = nextProducts
		st.suppliers = nextSuppliers
		return dirtyProducts | dirtySuppliers, nil
	})
	if err != nil {
		return err
	}
	s.log.Info().
		Int("products", len(nextProducts)).
		Int("suppliers", len(nextSuppliers)).
		Msg("datos sembrados")
	return nil
}

// AddSupplier agrega un proveedor.
func (s *Store) AddSupplier(ctx context.Context, sup entity.Supplier) (entity.Supplier, error) {
	if err := sup.Validate(); err != nil {
		return entity.Supplier{}, err
	}
	err := s.apply(ctx, func(st *state) (dirty, error) {
		if sup.ID == "" {
			sup.ID = s.newID()
		} else if st.supplierIndex(sup.ID) >= 0 {
			return 0, domain.ErrDuplicate
		}
		st.suppliers = append(st.suppliers, sup)
		return dirtySuppliers, nil
	})
	if err != nil {
		return entity.Supplier{}, err
	}
	return sup, nil
}

// UpdateSupplier reemplaza un proveedor existente.
func (s *Store) UpdateSupplier(ctx context.Context, sup entity.Supplier) (entity.Supplier, error) {
	if err := sup.Validate(); err != nil {
		return entity.Supplier{}, err
	}
	err := s.apply(ctx, func(st *state) (dirty, error) {
		i := st.supplierIndex(sup.ID)
		if i < 0 {
			return 0, fmt.Errorf("proveedor %s: %w", sup.ID, domain.ErrNotFound)
		}
		st.suppliers[i] = sup
		return dirtySuppliers, nil
	})
	if err != nil {
		return entity.Supplier{}, err
	}
	return sup, nil
}

// DeleteSupplier elimina un proveedor. No hay cascada: productos, requisiciones y órdenes
// que lo referencian quedan con una referencia colgante, tolerada en todo el motor.
func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	return s.apply(ctx, func(st *state) (dirty, error) {
		i := st.supplierIndex(id)
		if i < 0 {
			return 0, fmt.Errorf("proveedor %s: %w", id, domain.ErrNotFound)
		}
		st.suppliers = append(st.suppliers[:i], st.suppliers[i+1:]...)
		return dirtySuppliers, nil
	})
}

// DefaultSupplierFor proveedor sugerido para convertir una requisición: el sugerido si existe,
// si no el primero del catálogo. ok=false si no hay proveedores.
func (s *Store) DefaultSupplierFor(prID string) (entity.Supplier, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ri := s.st.requisitionIndex(prID)
	if ri < 0 {
		return entity.Supplier{}, false, fmt.Errorf("requisición %s: %w", prID, domain.ErrNotFound)
	}
	if si := s.st.supplierIndex(s.st.requisitions[ri].SuggestedSupplierID); si >= 0 {
		return s.st.suppliers[si], true, nil
	}
	if len(s.st.suppliers) > 0 {
		return s.st.suppliers[0], true, nil
	}
	return entity.Supplier{}, false, nil
}
