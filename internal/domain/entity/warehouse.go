package entity

import "time"

// Warehouse datos maestros mínimos de bodega.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
}
