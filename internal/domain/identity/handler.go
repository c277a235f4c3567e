package identity

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/pkg/pagination"
)

// Handler serves the admin user-management surface.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts /users on admin, which must already require the
// admin role.
func (h *Handler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/users", h.ListUsers)
	admin.POST("/users", h.CreateUser)
	admin.GET("/users/:id", h.GetUser)
	admin.PUT("/users/:id", h.UpdateUser)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.PATCH("/users/:id/toggle-status", h.ToggleStatus)
	admin.PATCH("/users/:id/role", h.SetRole)
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context(), pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) CreateUser(c echo.Context) error {
	var in CreateUserInput
	if err := apperr.Bind(c, &in); err != nil {
		return err
	}
	u, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	u, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	var in UpdateUserInput
	if err := apperr.Bind(c, &in); err != nil {
		return err
	}
	u, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ToggleStatus(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	disabled, err := h.svc.ToggleDisabled(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":       id,
		"disabled": disabled,
	})
}

func (h *Handler) SetRole(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	var in RoleInput
	if err := apperr.Bind(c, &in); err != nil {
		return err
	}
	u, err := h.svc.SetRole(c.Request().Context(), id, in.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func userID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, ErrUserNotFound
	}
	return id, nil
}
