package entity

import "time"

// Category agrupa productos (lácteos, panadería, ...).
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Supplier proveedor de productos.
type Supplier struct {
	ID        string
	Name      string
	LegalName string // razón social
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Storage ubicación física de almacenamiento (nevera, bodega seca, ...).
type Storage struct {
	ID          string
	Name        string
	Description string
	Capacity    int
	Occupancy   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
