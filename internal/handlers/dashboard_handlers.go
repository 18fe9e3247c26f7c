package handlers

import (
	"net/http"

	"flexgestor/internal/common"
	"flexgestor/internal/middleware"
	"flexgestor/internal/services"

	"github.com/labstack/echo/v4"
)

type DashboardHandlers struct {
	dashboardService services.DashboardService
}

func NewDashboardHandlers(dashboardService services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *DashboardHandlers) GetDashboard(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}

	kpis, err := h.dashboardService.KPIs(c.Request().Context(), tc)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "", common.Envelope{"dashboard": kpis})
}

// GetCharts handles GET /dashboard/charts?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *DashboardHandlers) GetCharts(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}

	charts, err := h.dashboardService.Charts(c.Request().Context(), tc, c.QueryParam("startDate"), c.QueryParam("endDate"))
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "", common.Envelope{"charts": charts})
}
