// Package vitals owns the mutable combat state of a character: hp,
// san, and the current condition.
package vitals

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/nexusrpg/nexus/core"
)

var tracer = otel.Tracer("vitals")

// Handler is the interface for handling HTTP requests
type Handler interface {
	ModulateStatus(c echo.Context) error
	UpdateCondition(c echo.Context) error
}

type handler struct {
	service Service
}

// NewHandler creates a new handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// ModulateStatus applies a clamped hp/san delta
func (h handler) ModulateStatus(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Vitals.Handler.ModulateStatus")
	defer span.End()

	var request ModulateRequest
	err := c.Bind(&request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request", "message": err.Error()})
	}

	stats, err := h.service.Modulate(ctx, c.Param("id"), request.Stat, request.Value)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "character not found"})
		}
		var validation core.ErrorValidation
		if errors.As(err, &validation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "message": validation.Msg})
		}
		span.RecordError(err)
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": stats})
}

// UpdateCondition overwrites the condition
func (h handler) UpdateCondition(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Vitals.Handler.UpdateCondition")
	defer span.End()

	var request ConditionRequest
	err := c.Bind(&request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request", "message": err.Error()})
	}

	stats, err := h.service.SetCondition(ctx, c.Param("id"), request.StatusID)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "character not found"})
		}
		span.RecordError(err)
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": stats.StatusID})
}
