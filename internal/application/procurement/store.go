// Package procurement es el motor del flujo de compras: guarda las cuatro colecciones
// (productos, proveedores, requisiciones, órdenes) detrás de un único escritor y aplica
// las máquinas de estado de PR y PO, la conversión PR→PO y la conciliación de stock al recibir.
package procurement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/nexus-procurement/internal/application/ports"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
	"github.com/jhoicas/nexus-procurement/internal/domain/repository"
)

// dirty marca qué colecciones cambió una mutación y deben reescribirse.
type dirty uint8

const (
	dirtyProducts dirty = 1 << iota
	dirtySuppliers
	dirtyRequisitions
	dirtyOrders
)

// state copia de trabajo de las colecciones. Las líneas (Items) nunca se modifican en sitio,
// por eso basta con copiar los slices de primer nivel al clonar.
type state struct {
	products     []entity.Product
	suppliers    []entity.Supplier
	requisitions []entity.PurchaseRequisition
	orders       []entity.PurchaseOrder
	reqSeq       sequence
	orderSeq     sequence
}

func (s *state) clone() state {
	return state{
		products:     append([]entity.Product(nil), s.products...),
		suppliers:    append([]entity.Supplier(nil), s.suppliers...),
		requisitions: append([]entity.PurchaseRequisition(nil), s.requisitions...),
		orders:       append([]entity.PurchaseOrder(nil), s.orders...),
		reqSeq:       s.reqSeq,
		orderSeq:     s.orderSeq,
	}
}

func (s *state) productIndex(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *state) supplierIndex(id string) int {
	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *state) requisitionIndex(id string) int {
	for i := range s.requisitions {
		if s.requisitions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *state) orderIndex(id string) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

// Store repositorio explícito de las cuatro colecciones.
//
// Todas las mutaciones se serializan con un único mutex (un escritor a la vez) y siguen
// el patrón clonar → mutar → persistir → publicar: si la persistencia falla, el estado
// en memoria no cambia.
type Store struct {
	mu      sync.RWMutex
	st      state
	tx      TxRunner
	log     zerolog.Logger
	metrics ports.WorkflowMetrics
	now     func() time.Time
	newID   func() string
}

// Option configura el Store.
type Option func(*Store)

// WithLogger inyecta el logger estructurado.
func WithLogger(l zerolog.Logger) Option { return func(s *Store) { s.log = l } }

// WithMetrics inyecta el recolector de métricas.
func WithMetrics(m ports.WorkflowMetrics) Option { return func(s *Store) { s.metrics = m } }

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithIDGenerator reemplaza el generador de IDs (tests).
func WithIDGenerator(gen func() string) Option { return func(s *Store) { s.newID = gen } }

// NewStore construye el store vacío. Llamar Load para traer el estado persistido.
func NewStore(tx TxRunner, opts ...Option) *Store {
	s := &Store{
		tx:      tx,
		log:     zerolog.Nop(),
		metrics: ports.NopMetrics{},
		now:     time.Now,
		newID:   newUUID,
		st: state{
			reqSeq:   sequence{prefix: requisitionPrefix},
			orderSeq: sequence{prefix: orderPrefix},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reemplaza el estado en memoria por lo persistido. Se invoca una vez al arrancar.
func (s *Store) Load(ctx context.Context) error {
	next := state{
		reqSeq:   sequence{prefix: requisitionPrefix},
		orderSeq: sequence{prefix: orderPrefix},
	}
	err := s.tx.Run(ctx, func(repo repository.CollectionRepository) error {
		var err error
		if next.products, err = repo.LoadProducts(ctx); err != nil {
			return fmt.Errorf("cargar productos: %w", err)
		}
		if next.suppliers, err = repo.LoadSuppliers(ctx); err != nil {
			return fmt.Errorf("cargar proveedores: %w", err)
		}
		if next.requisitions, err = repo.LoadRequisitions(ctx); err != nil {
			return fmt.Errorf("cargar requisiciones: %w", err)
		}
		if next.orders, err = repo.LoadPurchaseOrders(ctx); err != nil {
			return fmt.Errorf("cargar órdenes: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, r := range next.requisitions {
		next.reqSeq.observe(r.ReqNumber)
	}
	for _, o := range next.orders {
		next.orderSeq.observe(o.OrderNumber)
	}

	s.mu.Lock()
	s.st = next
	s.mu.Unlock()

	s.log.Info().
		Int("products", len(next.products)).
		Int("suppliers", len(next.suppliers)).
		Int("requisitions", len(next.requisitions)).
		Int("orders", len(next.orders)).
		Msg("colecciones cargadas")
	return nil
}

// apply ejecuta una mutación sobre una copia del estado, persiste las colecciones
// marcadas y solo entonces publica la copia.
func (s *Store) apply(ctx context.Context, fn func(st *state) (dirty, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.st.clone()
	d, err := fn(&next)
	if err != nil {
		return err
	}
	if d == 0 {
		return nil
	}
	if err := s.persist(ctx, &next, d); err != nil {
		s.log.Error().Err(err).Msg("persistir colecciones")
		return err
	}
	s.st = next
	return nil
}

func (s *Store) persist(ctx context.Context, st *state, d dirty) error {
	return s.tx.Run(ctx, func(repo repository.CollectionRepository) error {
		if d&dirtyProducts != 0 {
			if err := repo.SaveProducts(ctx, st.products); err != nil {
				return fmt.Errorf("guardar productos: %w", err)
			}
		}
		if d&dirtySuppliers != 0 {
			if err := repo.SaveSuppliers(ctx, st.suppliers); err != nil {
				return fmt.Errorf("guardar proveedores: %w", err)
			}
		}
		if d&dirtyRequisitions != 0 {
			if err := repo.SaveRequisitions(ctx, st.requisitions); err != nil {
				return fmt.Errorf("guardar requisiciones: %w", err)
			}
		}
		if d&dirtyOrders != 0 {
			if err := repo.SavePurchaseOrders(ctx, st.orders); err != nil {
				return fmt.Errorf("guardar órdenes: %w", err)
			}
		}
		return nil
	})
}

// ── Lecturas (copias) ────────────────────────────────────────────────────────

// Products devuelve una copia de la colección de productos.
func (s *Store) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Product(nil), s.st.products...)
}

// Suppliers devuelve una copia de la colección de proveedores.
func (s *Store) Suppliers() []entity.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Supplier(nil), s.st.suppliers...)
}

// Requisitions devuelve una copia de la colección de requisiciones.
func (s *Store) Requisitions() []entity.PurchaseRequisition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.PurchaseRequisition, len(s.st.requisitions))
	for i, r := range s.st.requisitions {
		r.Items = entity.CloneItems(r.Items)
		out[i] = r
	}
	return out
}

// PurchaseOrders devuelve una copia de la colección de órdenes.
func (s *Store) PurchaseOrders() []entity.PurchaseOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.PurchaseOrder, len(s.st.orders))
	for i, o := range s.st.orders {
		o.Items = entity.CloneItems(o.Items)
		out[i] = o
	}
	return out
}

// Product busca un producto por ID.
func (s *Store) Product(id string) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.st.productIndex(id); i >= 0 {
		return s.st.products[i], true
	}
	return entity.Product{}, false
}

// Supplier busca un proveedor por ID.
func (s *Store) Supplier(id string) (entity.Supplier, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.st.supplierIndex(id); i >= 0 {
		return s.st.suppliers[i], true
	}
	return entity.Supplier{}, false
}

// Requisition busca una requisición por ID.
func (s *Store) Requisition(id string) (entity.PurchaseRequisition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.st.requisitionIndex(id); i >= 0 {
		r := s.st.requisitions[i]
		r.Items = entity.CloneItems(r.Items)
		return r, true
	}
	return entity.PurchaseRequisition{}, false
}

// PurchaseOrder busca una orden por ID.
func (s *Store) PurchaseOrder(id string) (entity.PurchaseOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.st.orderIndex(id); i >= 0 {
		o := s.st.orders[i]
		o.Items = entity.CloneItems(o.Items)
		return o, true
	}
	return entity.PurchaseOrder{}, false
}
