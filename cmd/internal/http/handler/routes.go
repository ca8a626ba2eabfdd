package handler

import "github.com/labstack/echo/v4"

func RegisterRoutes(e *echo.Echo, notes *DefaultNoteRoute) {
	e.GET("/api/notes", notes.GetNotes)
	e.GET("/api/notes/:id", notes.GetNote)
	e.POST("/api/notes", notes.CreateNote)
	e.PUT("/api/notes/:id", notes.UpdateNote)
	e.PATCH("/api/notes/:id", notes.UpdateNote)
	e.DELETE("/api/notes/:id", notes.DeleteNote)

	e.GET("/health", HealthCheck)
}
