package booking

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/internal/platform/auth"
	"github.com/ambulance/ambulance/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts /bookings on protected, which must already require
// a credential.
func (h *Handler) RegisterRoutes(protected *echo.Group) {
	protected.POST("/bookings", h.Create)
	protected.GET("/bookings", h.List)
	protected.GET("/bookings/:id", h.Get)
	protected.PUT("/bookings/:id/cancel", h.Cancel)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := apperr.Bind(c, &in); err != nil {
		return err
	}
	ctx := c.Request().Context()
	b, err := h.svc.Create(ctx, auth.UserIDFromContext(ctx), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()
	bookings, err := h.svc.ListMine(ctx, auth.UserIDFromContext(ctx), pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	b, err := h.svc.Get(ctx, auth.UserIDFromContext(ctx), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	b, err := h.svc.Cancel(ctx, auth.UserIDFromContext(ctx), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func recordID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, ErrNotFoundOrForbidden
	}
	return id, nil
}
