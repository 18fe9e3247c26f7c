package repositories

import (
	"context"
	"time"

	"flexgestor/internal/models"
	"flexgestor/pkg/database"

	"github.com/jackc/pgx/v5"
)

type DashboardRepository interface {
	KPIs(ctx context.Context, environmentID int64) (models.DashboardKPIs, error)
	Charts(ctx context.Context, environmentID int64, start, end time.Time) (*models.DashboardCharts, error)
}

type dashboardRepo struct {
	db database.DBTX
}

func NewDashboardRepo(db database.DBTX) DashboardRepository {
	return &dashboardRepo{db: db}
}

func (r *dashboardRepo) KPIs(ctx context.Context, environmentID int64) (models.DashboardKPIs, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM sp_dashboard_kpis($1)`, environmentID)
	if err != nil {
		return nil, err
	}
	result, err := collectMaps(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return models.DashboardKPIs{}, nil
	}
	return models.DashboardKPIs(result[0]), nil
}

func (r *dashboardRepo) Charts(ctx context.Context, environmentID int64, start, end time.Time) (*models.DashboardCharts, error) {
	charts := &models.DashboardCharts{}
	series := []struct {
		procedure string
		target    *[]models.DashboardRow
	}{
		{"sp_dashboard_revenue_by_day", &charts.RevenueByDay},
		{"sp_dashboard_orders_by_status", &charts.OrdersByStatus},
		{"sp_dashboard_top_products", &charts.TopProducts},
		{"sp_dashboard_new_customers", &charts.NewCustomers},
		{"sp_dashboard_revenue_by_payment_method", &charts.RevenueByPaymentMethod},
		{"sp_dashboard_revenue_by_order_type", &charts.RevenueByOrderType},
		{"sp_dashboard_revenue_by_business_line", &charts.RevenueByBusinessLine},
	}

	for _, s := range series {
		rows, err := r.db.Query(ctx, `SELECT * FROM `+s.procedure+`($1, $2, $3)`, environmentID, start, end)
		if err != nil {
			return nil, err
		}
		result, err := collectMaps(rows)
		if err != nil {
			return nil, err
		}
		*s.target = result
	}
	return charts, nil
}

func collectMaps(rows pgx.Rows) ([]models.DashboardRow, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DashboardRow, error) {
		m, err := pgx.RowToMap(row)
		return models.DashboardRow(m), err
	})
}
