package memory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/tu-usuario/mrp-pro/internal/domain"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación en memoria de AllocationRepository.
type AllocationRepo struct {
	store *Store
}

// NewAllocationRepository construye el repo sobre un store.
func NewAllocationRepository(store *Store) *AllocationRepo {
	return &AllocationRepo{store: store}
}

// Create guarda una asignación nueva.
func (r *AllocationRepo) Create(alloc *entity.Allocation) error {
	if alloc.ID == "" {
		alloc.ID = uuid.New().String()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.allocations[alloc.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.allocations[alloc.ID] = *alloc
	return nil
}

// ListByReservation lista las asignaciones de una reserva en orden estable.
func (r *AllocationRepo) ListByReservation(reservationID string) ([]*entity.Allocation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.Allocation
	for _, alloc := range r.store.allocations {
		if alloc.ReservationID == reservationID {
			copia := alloc
			list = append(list, &copia)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

// DeleteByReservation elimina las asignaciones de una reserva.
func (r *AllocationRepo) DeleteByReservation(reservationID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, alloc := range r.store.allocations {
		if alloc.ReservationID == reservationID {
			delete(r.store.allocations, id)
		}
	}
	return nil
}
