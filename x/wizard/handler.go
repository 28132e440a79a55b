// Package wizard drives the multi-step character creation flow: a
// linear step machine over a draft, with point-buy allocation and
// club-bonus reconciliation tied to step transitions.
package wizard

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/x/ledger"
)

var tracer = otel.Tracer("wizard")

// Handler is the interface for handling HTTP requests
type Handler interface {
	Start(c echo.Context) error
	Get(c echo.Context) error
	Update(c echo.Context) error
	Next(c echo.Context) error
	Prev(c echo.Context) error
	Submit(c echo.Context) error
}

type handler struct {
	service Service
}

// NewHandler creates a new handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// Start opens a session; pass ?session= to resume a stored draft
func (h handler) Start(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Wizard.Handler.Start")
	defer span.End()

	view, err := h.service.Start(ctx, c.QueryParam("session"))
	if err != nil {
		span.RecordError(err)
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "content": view})
}

// Get returns the session state
func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Wizard.Handler.Get")
	defer span.End()

	view, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "draft not found"})
		}
		span.RecordError(err)
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": view})
}

// Update applies partial field edits to the draft
func (h handler) Update(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Wizard.Handler.Update")
	defer span.End()

	var request UpdateRequest
	err := c.Bind(&request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request", "message": err.Error()})
	}

	view, err := h.service.Update(ctx, c.Param("id"), request)
	if err != nil {
		return h.rejectOr(c, view, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": view})
}

// Next advances one step
func (h handler) Next(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Wizard.Handler.Next")
	defer span.End()

	view, err := h.service.Next(ctx, c.Param("id"))
	if err != nil {
		return h.rejectOr(c, view, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": view})
}

// Prev moves back one step
func (h handler) Prev(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Wizard.Handler.Prev")
	defer span.End()

	view, err := h.service.Prev(ctx, c.Param("id"))
	if err != nil {
		return h.rejectOr(c, view, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": view})
}

// Submit creates the character from the finished draft
func (h handler) Submit(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Wizard.Handler.Submit")
	defer span.End()

	response, err := h.service.Submit(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "draft not found"})
		}
		var validation core.ErrorValidation
		if errors.As(err, &validation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "message": validation.Msg})
		}
		span.RecordError(err)
		return err
	}
	return c.JSON(http.StatusCreated, response)
}

// rejectOr maps the recoverable wizard failures to 4xx responses
func (h handler) rejectOr(c echo.Context, view View, err error) error {
	if errors.Is(err, core.ErrorNotFound{}) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "draft not found"})
	}
	var rejection StepRejection
	if errors.As(err, &rejection) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "step rejected", "message": rejection.Reason, "content": view})
	}
	var pointRejection ledger.Rejection
	if errors.As(err, &pointRejection) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "edit rejected", "message": pointRejection.Reason, "content": view})
	}
	var validation core.ErrorValidation
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "message": validation.Msg, "content": view})
	}
	return err
}
