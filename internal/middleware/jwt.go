package middleware

import (
	"strings"

	"flexgestor/internal/common"
	"flexgestor/internal/services"

	"github.com/labstack/echo/v4"
)

// JWTMiddleware verifies the bearer token and attaches the caller's
// TenantContext to the request context. Missing tokens are Unauthenticated,
// anything that fails verification is InvalidToken.
func JWTMiddleware(authService services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if tokenString == "" {
				return common.NewError(common.KindUnauthenticated, "Access token not provided.", nil)
			}

			tc, err := authService.ValidateToken(c.Request().Context(), tokenString)
			if err != nil {
				return err
			}

			ctx := common.WithTenant(c.Request().Context(), tc)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// TenantFromRequest returns the context attached by JWTMiddleware
func TenantFromRequest(c echo.Context) (common.TenantContext, error) {
	tc, ok := common.TenantFromContext(c.Request().Context())
	if !ok {
		return common.TenantContext{}, common.NewError(common.KindUnauthenticated, "Access token not provided.", nil)
	}
	return tc, nil
}
