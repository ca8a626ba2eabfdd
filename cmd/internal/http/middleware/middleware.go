package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// Use installs the middleware stack every route shares: panic recovery,
// request ids, access logging, CORS for browser clients and a body limit.
func Use(e *echo.Echo, bodyLimit string) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogStatus:     true,
		LogLatency:    true,
		LogRequestID:  true,
		LogError:      true,
		LogValuesFunc: logRequest,
	}))
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit(bodyLimit))
}

func logRequest(_ echo.Context, v echomw.RequestLoggerValues) error {
	if v.Error != nil {
		log.Errorf("%s %s %d %s [%s]: %v", v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.Error)
		return nil
	}
	log.Debugf("%s %s %d %s [%s]", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
	return nil
}
