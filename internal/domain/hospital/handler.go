package hospital

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the directory reads on public and the writes on
// admin.
func (h *Handler) RegisterRoutes(public, admin *echo.Group) {
	public.GET("/hospitals", h.List)
	public.GET("/hospitals/search/filters", h.Search)
	public.GET("/hospitals/:id", h.Get)

	admin.POST("/hospitals", h.Create)
	admin.PUT("/hospitals/:id", h.Update)
	admin.DELETE("/hospitals/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	hospitals, err := h.svc.List(c.Request().Context(), pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hospitals)
}

func (h *Handler) Search(c echo.Context) error {
	f, err := FilterFromContext(c)
	if err != nil {
		return err
	}
	hospitals, err := h.svc.Search(c.Request().Context(), f, pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hospitals)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := hospitalID(c)
	if err != nil {
		return err
	}
	hosp, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hosp)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := apperr.Bind(c, &in); err != nil {
		return err
	}
	hosp, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, hosp)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := hospitalID(c)
	if err != nil {
		return err
	}
	var in UpdateInput
	if err := apperr.Bind(c, &in); err != nil {
		return err
	}
	hosp, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hosp)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := hospitalID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func hospitalID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, ErrHospitalNotFound
	}
	return id, nil
}
