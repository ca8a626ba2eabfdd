package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck is used by container health checks.
func HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
