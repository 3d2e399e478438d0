package handlers

import (
	"errors"
	"net/http"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// LoginForm is the login submission payload
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm is the registration submission payload
type RegisterForm struct {
	Name     string `form:"name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
}

// AuthHandler handles login, logout and registration
type AuthHandler struct {
	auth       services.AuthServiceInterface
	tokens     services.TokenServiceInterface
	cookieName string
	secure     bool
}

// NewAuthHandler creates a new auth handler. secure controls the Secure
// flag on the session cookie.
func NewAuthHandler(auth services.AuthServiceInterface, tokens services.TokenServiceInterface, cookieName string, secure bool) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		tokens:     tokens,
		cookieName: cookieName,
		secure:     secure,
	}
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login", map[string]interface{}{})
}

// Login verifies credentials and starts a session
func (h *AuthHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login", map[string]interface{}{
			"Error": apperrors.GetErrorMessage(apperrors.ValidationGeneral),
		})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login", map[string]interface{}{
			"Error": apperrors.GetErrorMessage(apperrors.AuthInvalidCredentials),
			"Email": form.Email,
		})
	}

	user, err := h.auth.Login(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Render(http.StatusUnauthorized, "login", map[string]interface{}{
				"Error": apperrors.GetErrorMessage(apperrors.AuthInvalidCredentials),
				"Email": form.Email,
			})
		}
		return SendSystemError(c, err)
	}

	if err := h.startSession(c, user); err != nil {
		return SendSystemError(c, err)
	}

	return c.Redirect(http.StatusSeeOther, "/transact")
}

// RegisterPage renders the registration form
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register", map[string]interface{}{})
}

// Register creates a new user and starts a session
func (h *AuthHandler) Register(c echo.Context) error {
	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register", map[string]interface{}{
			"Error": apperrors.GetErrorMessage(apperrors.ValidationGeneral),
		})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register", map[string]interface{}{
			"Error": apperrors.GetErrorMessage(apperrors.ValidationGeneral),
			"Name":  form.Name,
			"Email": form.Email,
		})
	}

	user, err := h.auth.Register(form.Email, form.Name, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return c.Render(http.StatusUnprocessableEntity, "register", map[string]interface{}{
				"Error": apperrors.GetErrorMessage(apperrors.AuthEmailTaken),
				"Name":  form.Name,
				"Email": form.Email,
			})
		case errors.Is(err, services.ErrPasswordTooShort):
			return c.Render(http.StatusBadRequest, "register", map[string]interface{}{
				"Error": apperrors.GetErrorMessage(apperrors.ValidationGeneral),
				"Name":  form.Name,
				"Email": form.Email,
			})
		default:
			return SendSystemError(c, err)
		}
	}

	if err := h.startSession(c, user); err != nil {
		return SendSystemError(c, err)
	}

	return c.Redirect(http.StatusSeeOther, "/transact")
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/login")
}

// startSession issues a session token and sets it as an HttpOnly cookie
func (h *AuthHandler) startSession(c echo.Context, user *models.User) error {
	token, expiresAt, err := h.tokens.Generate(user)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
