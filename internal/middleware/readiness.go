package middleware

import (
	"flexgestor/internal/common"
	"flexgestor/pkg/database"

	"github.com/labstack/echo/v4"
)

// DatabaseReady fails fast while the last database probe reported an outage
func DatabaseReady(health *database.Health) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !health.Healthy() {
				return common.NewError(common.KindDatabaseUnavailable, "Database unavailable. Try again shortly.", nil)
			}
			return next(c)
		}
	}
}
