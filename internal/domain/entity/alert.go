package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de alerta. Por ahora solo existe vencimiento.
const (
	AlertTypeExpiry = "vencimiento"
)

// Estados de una alerta.
const (
	AlertStatusActive     = "activa"
	AlertStatusInProgress = "en_proceso"
	AlertStatusResolved   = "resuelta"
	AlertStatusDismissed  = "descartada"
)

// IsValidAlertStatus indica si s es un estado de alerta permitido.
func IsValidAlertStatus(s string) bool {
	switch s {
	case AlertStatusActive, AlertStatusInProgress, AlertStatusResolved, AlertStatusDismissed:
		return true
	}
	return false
}

// Alert marca un producto que necesita atención.
// Invariante: como máximo una alerta activa por (ProductID, Type); lo garantiza
// el índice único parcial uq_alertas_activa_producto_tipo.
type Alert struct {
	ID               string
	ProductID        string
	Type             string
	Message          string
	PriorityLevel    int // 1..4, FK a niveles_prioridad
	CreatedAt        time.Time
	ExpiryDate       *time.Time // copia de la fecha de caducidad del producto
	Status           string
	AIClassification string // clasificación + recomendación del scorer
}

// AlertView alerta activa enriquecida con datos del producto y del nivel de prioridad.
type AlertView struct {
	Alert
	ProductName   string
	Barcode       string
	StockQuantity decimal.Decimal
	UnitPrice     decimal.Decimal
	PriorityName  string
	ColorHex      string
}

// AlertStatusChange registro de auditoría de un cambio de estado (tabla alertas_historial).
type AlertStatusChange struct {
	ID             string
	AlertID        string
	PreviousStatus string
	NewStatus      string
	Comment        string
	User           string
	ChangedAt      time.Time
}
