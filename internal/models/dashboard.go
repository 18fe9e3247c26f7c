package models

// DashboardKPIs is the single KPI row produced by sp_dashboard_kpis; its
// columns are owned by the gateway and passed through unchanged.
type DashboardKPIs map[string]interface{}

// DashboardRow is one row of a chart series
type DashboardRow map[string]interface{}

// DashboardCharts holds the chart series for a date range
type DashboardCharts struct {
	RevenueByDay           []DashboardRow `json:"revenueByDay"`
	OrdersByStatus         []DashboardRow `json:"ordersByStatus"`
	TopProducts            []DashboardRow `json:"topProducts"`
	NewCustomers           []DashboardRow `json:"newCustomers"`
	RevenueByPaymentMethod []DashboardRow `json:"revenueByPaymentMethod"`
	RevenueByOrderType     []DashboardRow `json:"revenueByOrderType"`
	RevenueByBusinessLine  []DashboardRow `json:"revenueByBusinessLine"`
}
