package services

import (
	"context"
	"time"

	"flexgestor/internal/common"
	"flexgestor/internal/models"
	"flexgestor/internal/repositories"
)

// defaultChartDays is the span of the chart window when no start date is given
const defaultChartDays = 6

type DashboardService interface {
	KPIs(ctx context.Context, tc common.TenantContext) (models.DashboardKPIs, error)
	Charts(ctx context.Context, tc common.TenantContext, startDate, endDate string) (*models.DashboardCharts, error)
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepository
	now           func() time.Time
}

func NewDashboardService(dashboardRepo repositories.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo, now: time.Now}
}

func (s *dashboardService) KPIs(ctx context.Context, tc common.TenantContext) (models.DashboardKPIs, error) {
	kpis, err := s.dashboardRepo.KPIs(ctx, tc.TenantID)
	if err != nil {
		return nil, common.InternalError("Failed to load dashboard.", err)
	}
	return kpis, nil
}

func (s *dashboardService) Charts(ctx context.Context, tc common.TenantContext, startDate, endDate string) (*models.DashboardCharts, error) {
	start, end, err := ChartRange(startDate, endDate, s.now())
	if err != nil {
		return nil, err
	}

	charts, err := s.dashboardRepo.Charts(ctx, tc.TenantID, start, end)
	if err != nil {
		return nil, common.InternalError("Failed to load dashboard charts.", err)
	}
	return charts, nil
}

// ChartRange resolves the chart window in now's location. An empty end date
// means now, otherwise the last instant of that day; an empty start date means
// midnight six days before the end date, otherwise midnight of that day.
func ChartRange(startDate, endDate string, now time.Time) (time.Time, time.Time, error) {
	loc := now.Location()

	end := now
	if endDate != "" {
		day, err := common.ParseDate(endDate, "endDate", loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		y, m, d := day.Date()
		end = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	}

	var start time.Time
	if startDate != "" {
		day, err := common.ParseDate(startDate, "startDate", loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = day
	} else {
		y, m, d := end.AddDate(0, 0, -defaultChartDays).Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}

	if err := common.ValidateDateRange(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
