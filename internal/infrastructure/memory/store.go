// Package memory implementa los puertos de persistencia en memoria para pruebas y demos.
// Las transacciones se serializan y se revierten restaurando una copia de productos y
// movimientos. Las escrituras sobre esas tablas fuera de una transacción también toman el
// candado de transacciones, así un rollback nunca descarta trabajo ajeno. Igual que una
// secuencia de PostgreSQL, los IDs consumidos no se reutilizan tras un rollback.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	products   map[int64]entity.Product
	movements  map[int64]entity.Movement
	categories map[int64]entity.Category
	locations  map[int64]entity.Location
	audit      []entity.AuditEntry
	users      map[int64]entity.User
	nextID     int64

	auditErr error

	// Now reloj usado para occurred_at y timestamps.
	Now func() time.Time
}

// NewStore crea un estado vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[int64]entity.Product),
		movements:  make(map[int64]entity.Movement),
		categories: make(map[int64]entity.Category),
		locations:  make(map[int64]entity.Location),
		users:      make(map[int64]entity.User),
		Now:        time.Now,
	}
}

func (s *Store) newID() int64 {
	s.nextID++
	return s.nextID
}

// lockTables toma el candado de escritura sobre productos y movimientos. Fuera de una
// transacción (inTx false) espera además a que termine la transacción en curso.
func (s *Store) lockTables(inTx bool) (unlock func()) {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// FailAudit hace que las siguientes escrituras de bitácora fallen con err (nil las restablece).
func (s *Store) FailAudit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditErr = err
}

type snapshot struct {
	products  map[int64]entity.Product
	movements map[int64]entity.Movement
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		products:  make(map[int64]entity.Product, len(s.products)),
		movements: make(map[int64]entity.Movement, len(s.movements)),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.movements {
		snap.movements[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.movements = snap.movements
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y revierte el estado si fn falla.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn en exclusión mutua con las demás transacciones.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := r.store.snapshot()
	movRepo := &MovementRepo{s: r.store, inTx: true}
	productRepo := &ProductRepo{s: r.store, inTx: true}
	if err := fn(movRepo, productRepo); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
