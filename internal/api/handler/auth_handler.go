package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sudhanthirapriya/face-recognition-project/internal/api/metrics"
	"github.com/sudhanthirapriya/face-recognition-project/internal/core/domain"
	"github.com/sudhanthirapriya/face-recognition-project/internal/core/ports"
)

// SessionCookieName is the cookie carrying the session token for browser
// clients; API clients may use a bearer Authorization header instead.
const SessionCookieName = "session_token"

type AuthHandler struct {
	authService ports.AuthService
	sessionTTL  time.Duration
}

func NewAuthHandler(authService ports.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, sessionTTL: sessionTTL}
}

type loginRequest struct {
	Phone    string `json:"phone"    form:"phone"    validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Token   string           `json:"token,omitempty"`
	User    *domain.Identity `json:"user,omitempty"`
}

// Login authenticates by phone number and password.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  loginResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Status: "danger", Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{
			Status:  "danger",
			Message: "Please provide phone number and password.",
		})
	}

	token, identity, err := h.authService.Login(c.Request().Context(), req.Phone, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, loginResponse{
				Status:  "danger",
				Message: "Invalid phone number or password.",
			})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, loginResponse{
		Status:  "success",
		Message: "Login successful.",
		Token:   token,
		User:    identity,
	})
}

// Logout revokes the caller's session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}

	// Expire the browser cookie as well.
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.JSON(http.StatusOK, map[string]string{"message": "You have been logged out."})
}

// Dashboard returns the authenticated identity's profile.
//
// @Summary      Dashboard
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *AuthHandler) Dashboard(c echo.Context) error {
	identityID, _ := c.Get("identity_id").(string)
	if identityID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	identity, err := h.authService.Profile(c.Request().Context(), identityID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, identity)
}
