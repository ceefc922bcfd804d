package entity

import "time"

// Product datos maestros mínimos usados para validar referencias.
// El CRUD completo de productos vive fuera de este módulo.
type Product struct {
	ID        string
	SKU       string
	Name      string
	CreatedAt time.Time
}
