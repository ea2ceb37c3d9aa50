package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/resumen.
// Une los KPIs de inventario, alertas y reportes del mes en curso.
type DashboardSummaryDTO struct {
	TotalProducts    int `json:"total_productos"`
	ExpiringProducts int `json:"productos_proximos_vencer"` // vencen en los próximos 14 días

	// Alertas activas por nivel de prioridad ("1".."4"); siempre trae las cuatro claves.
	ActiveAlertsByPriority map[string]int `json:"alertas_activas_por_prioridad"`
	TotalActiveAlerts      int            `json:"total_alertas_activas"`

	// Estadísticas de desperdicio evitado del mes (día 1 – hoy).
	MonthStatistics ReportStatisticsDTO `json:"estadisticas_mes"`

	DateLabel string `json:"periodo"` // ej: "Octubre 2026"
}
