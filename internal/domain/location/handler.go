package location

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected *echo.Group) {
	protected.GET("/locations", h.List)
	protected.POST("/locations", h.Create)
	protected.PUT("/locations/:id", h.Update)
	protected.DELETE("/locations/:id", h.Delete)
	protected.PUT("/locations/:id/set-default", h.SetDefault)
}

func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()
	locations, err := h.svc.ListMine(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locations)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := apperr.Bind(c, &in); err != nil {
		return err
	}
	ctx := c.Request().Context()
	l, err := h.svc.Create(ctx, auth.UserIDFromContext(ctx), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	var in UpdateInput
	if err := apperr.Bind(c, &in); err != nil {
		return err
	}
	ctx := c.Request().Context()
	l, err := h.svc.Update(ctx, auth.UserIDFromContext(ctx), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.svc.Delete(ctx, auth.UserIDFromContext(ctx), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SetDefault(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	l, err := h.svc.SetDefault(ctx, auth.UserIDFromContext(ctx), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

func recordID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, ErrNotFoundOrForbidden
	}
	return id, nil
}
