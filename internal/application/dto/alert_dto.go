package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertResponse alerta activa con datos del producto y del nivel de prioridad.
type AlertResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"producto_id"`
	Type             string          `json:"tipo_alerta"`
	Message          string          `json:"mensaje"`
	PriorityLevel    int             `json:"nivel_prioridad_id"`
	CreatedAt        time.Time       `json:"fecha_creacion"`
	ExpiryDate       *string         `json:"fecha_vencimiento"` // YYYY-MM-DD
	Status           string          `json:"estado"`
	AIClassification string          `json:"clasificacion_ia"`
	ProductName      string          `json:"producto_nombre,omitempty"`
	Barcode          string          `json:"codigo_barras,omitempty"`
	StockQuantity    decimal.Decimal `json:"cantidad_stock"`
	UnitPrice        decimal.Decimal `json:"precio_unitario"`
	PriorityName     string          `json:"prioridad_nombre,omitempty"`
	ColorHex         string          `json:"color_hex,omitempty"`
}

// AlertListResponse respuesta de GET /api/alertas.
type AlertListResponse struct {
	Alerts []AlertResponse `json:"alertas"`
}

// GenerateAlertsResponse respuesta de POST /api/alertas/generar.
type GenerateAlertsResponse struct {
	Generated int             `json:"alertas_generadas"`
	Alerts    []AlertResponse `json:"alertas"`
}

// UpdateAlertStatusRequest body de PATCH /api/alertas.
type UpdateAlertStatusRequest struct {
	AlertID string `json:"alerta_id"`
	Status  string `json:"estado"`
	Comment string `json:"comentario"`
	User    string `json:"usuario"`
}

// SuccessResponse {success: bool}.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// AlertHistoryResponse fila de alertas_historial.
type AlertHistoryResponse struct {
	ID             string    `json:"id"`
	AlertID        string    `json:"alerta_id"`
	PreviousStatus string    `json:"estado_anterior"`
	NewStatus      string    `json:"estado_nuevo"`
	Comment        string    `json:"comentario"`
	User           string    `json:"usuario"`
	ChangedAt      time.Time `json:"fecha"`
}

// AlertHistoryListResponse respuesta de GET /api/alertas/:id/historial.
type AlertHistoryListResponse struct {
	History []AlertHistoryResponse `json:"historial"`
}
