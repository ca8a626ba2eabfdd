// Package web serves the single-page notes client.
package web

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed index.html
var indexHTML []byte

func Register(e *echo.Echo) {
	e.GET("/", Index)
}

func Index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexHTML)
}
