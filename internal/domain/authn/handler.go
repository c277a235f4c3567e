package authn

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ambulance/ambulance/internal/domain/identity"
	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/internal/platform/auth"
)

type Handler struct {
	svc          *Service
	cookieSecure bool
}

func NewHandler(svc *Service, cookieSecure bool) *Handler {
	return &Handler{svc: svc, cookieSecure: cookieSecure}
}

// RegisterRoutes mounts the sign-in endpoints on public and the profile
// endpoints on protected, which must already require a credential.
func (h *Handler) RegisterRoutes(public, protected *echo.Group) {
	public.POST("/auth/signup", h.Signup)
	public.POST("/auth/login", h.Login)
	public.POST("/auth/social-login", h.SocialLogin)
	public.POST("/auth/logout", h.Logout)

	protected.GET("/auth/me", h.Me)
	protected.PUT("/auth/me", h.UpdateMe)
}

func (h *Handler) Signup(c echo.Context) error {
	var in SignupInput
	if err := apperr.Bind(c, &in); err != nil {
		return err
	}
	res, err := h.svc.Signup(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) Login(c echo.Context) error {
	var in LoginInput
	if err := apperr.Bind(c, &in); err != nil {
		return err
	}
	sess, err := h.svc.Login(c.Request().Context(), in)
	if err != nil {
		return err
	}
	h.setCookie(c, sess.Token, sess.ExpiresAt)
	return c.JSON(http.StatusOK, sess)
}

func (h *Handler) SocialLogin(c echo.Context) error {
	var in identity.CreateSocialInput
	if err := apperr.Bind(c, &in); err != nil {
		return err
	}
	sess, err := h.svc.SocialLogin(c.Request().Context(), in)
	if err != nil {
		return err
	}
	h.setCookie(c, sess.Token, sess.ExpiresAt)
	return c.JSON(http.StatusOK, sess)
}

// Logout clears the informational cookie. Issued tokens stay valid until
// they expire.
func (h *Handler) Logout(c echo.Context) error {
	h.setCookie(c, "", time.Unix(0, 0))
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) Me(c echo.Context) error {
	u, err := h.svc.Me(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) UpdateMe(c echo.Context) error {
	var in ProfileInput
	if err := apperr.Bind(c, &in); err != nil {
		return err
	}
	u, err := h.svc.UpdateMe(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) setCookie(c echo.Context, value string, expires time.Time) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	c.SetCookie(cookie)
}
