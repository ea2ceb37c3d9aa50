package entity

// Niveles de prioridad (tabla de lookup niveles_prioridad).
const (
	PriorityLow      = 1
	PriorityMedium   = 2
	PriorityHigh     = 3
	PriorityCritical = 4
)

// PriorityLevel fila de niveles_prioridad.
type PriorityLevel struct {
	ID       int
	Name     string
	ColorHex string
}
