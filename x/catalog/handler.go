// Package catalog serves the read-only reference data the wizard and
// game-master views draw from: clubs, archetypes, weapons, status effects.
package catalog

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/nexusrpg/nexus/core"
)

var tracer = otel.Tracer("catalog")

// Handler is the interface for handling HTTP requests
type Handler interface {
	GetAll(c echo.Context) error
	GetClub(c echo.Context) error
	GetStatusEffect(c echo.Context) error
}

type handler struct {
	service Service
}

// NewHandler creates a new handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// GetAll returns the full reference bundle
func (h handler) GetAll(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Catalog.Handler.GetAll")
	defer span.End()

	data, err := h.service.GetReferenceData(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": data})
}

// GetClub returns one club by ID
func (h handler) GetClub(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Catalog.Handler.GetClub")
	defer span.End()

	club, err := h.service.GetClub(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "club not found"})
		}
		span.RecordError(err)
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": club})
}

// GetStatusEffect returns one status effect by ID
func (h handler) GetStatusEffect(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Catalog.Handler.GetStatusEffect")
	defer span.End()

	status, err := h.service.GetStatusEffect(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "status effect not found"})
		}
		span.RecordError(err)
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": status})
}
