package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/queue"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/service"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// AuthHandler adapts the session authority to HTTP. It owns no decision
// logic: it binds request bodies, calls the service, and maps each typed
// error to a status code and message.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(a *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: a}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPart struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type loginResp struct {
	User  userPart  `json:"user"`
	Token tokenPart `json:"token"`
}

// toUserPart strips the password hash; it must never appear in a response.
func toUserPart(u *model.User) userPart {
	return userPart{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Register: create a new account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Auth.Register(ctx, req.Name, req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email, username and password are required"})
		case errors.Is(err, repository.ErrDuplicateUser):
			return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
		}
	}

	_ = service.PublishAuthEvent(ctx, queue.AuthEvent{
		Type:     queue.EventUserRegistered,
		UserID:   u.ID,
		Username: u.Username,
	})

	return c.JSON(http.StatusCreated, echo.Map{"user": toUserPart(u)})
}

// Login: verify credentials and return a fresh session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, token, err := h.Auth.Authenticate(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
		// Unknown user and wrong password collapse into one response.
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
	}

	_ = service.PublishAuthEvent(ctx, queue.AuthEvent{
		Type:     queue.EventUserLoggedIn,
		UserID:   u.ID,
		Username: u.Username,
	})

	return c.JSON(http.StatusOK, loginResp{
		User:  toUserPart(u),
		Token: tokenPart{Token: token.Token, Expires: token.Exp},
	})
}

// Logout: record the presented bearer token in the revocation set. The
// handler reads the Authorization header itself instead of going through
// the auth middleware, so clients can also log out tokens that already
// expired. Double logout succeeds both times.
func (h *AuthHandler) Logout(c echo.Context) error {
	header := c.Request().Header.Get("Authorization")
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if !strings.HasPrefix(header, "Bearer ") || raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.Logout(ctx, raw); err != nil {
		if errors.Is(err, service.ErrNoToken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}

	_ = service.PublishAuthEvent(ctx, queue.AuthEvent{
		Type:        queue.EventUserLoggedOut,
		TokenDigest: utils.HashToken(raw),
	})

	return c.NoContent(http.StatusNoContent)
}
