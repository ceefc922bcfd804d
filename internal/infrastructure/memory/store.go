package memory

import (
	"sync"

	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
)

// Store estado compartido de los repositorios en memoria. Guarda entidades
// por valor: los repos copian al entrar y al salir, así una mutación del
// caller nunca toca el estado guardado sin pasar por Update.
//
// Sustituto de PostgreSQL para tests de casos de uso; el TxRunner en memoria
// reproduce el contrato transaccional (serialización + rollback por snapshot).
type Store struct {
	mu           sync.RWMutex
	txMu         sync.Mutex // serializa transacciones, como los row locks en BD
	lots         map[string]entity.InventoryLot
	reservations map[string]entity.Reservation
	allocations  map[string]entity.Allocation
	boms         map[string]entity.BOM
	bomNodes     map[string][]entity.BOMNode
	products     map[string]entity.Product
	warehouses   map[string]entity.Warehouse
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		lots:         make(map[string]entity.InventoryLot),
		reservations: make(map[string]entity.Reservation),
		allocations:  make(map[string]entity.Allocation),
		boms:         make(map[string]entity.BOM),
		bomNodes:     make(map[string][]entity.BOMNode),
		products:     make(map[string]entity.Product),
		warehouses:   make(map[string]entity.Warehouse),
	}
}

// snapshot copia el estado mutable (lo que tocan las transacciones).
type snapshot struct {
	lots         map[string]entity.InventoryLot
	reservations map[string]entity.Reservation
	allocations  map[string]entity.Allocation
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		lots:         make(map[string]entity.InventoryLot, len(s.lots)),
		reservations: make(map[string]entity.Reservation, len(s.reservations)),
		allocations:  make(map[string]entity.Allocation, len(s.allocations)),
	}
	for k, v := range s.lots {
		snap.lots[k] = v
	}
	for k, v := range s.reservations {
		snap.reservations[k] = v
	}
	for k, v := range s.allocations {
		snap.allocations[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lots = snap.lots
	s.reservations = snap.reservations
	s.allocations = snap.allocations
}

// SeedProduct registra un producto maestro (solo para tests).
func (s *Store) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// SeedWarehouse registra una bodega maestra (solo para tests).
func (s *Store) SeedWarehouse(w entity.Warehouse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses[w.ID] = w
}

// SeedBOM registra un BOM y reemplaza sus nodos (solo para tests).
func (s *Store) SeedBOM(b entity.BOM, nodes []entity.BOMNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boms[b.ID] = b
	s.bomNodes[b.ID] = append([]entity.BOMNode{}, nodes...)
}
