package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/middleware"
	"github.com/iliyamo/user-auth-service/internal/queue"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/service"
)

// ProfileHandler exposes the authenticated user's own record. The user id
// always comes from the verified token placed in context by the auth
// middleware, never from the request body, so a user can only ever act on
// their own profile.
type ProfileHandler struct {
	Profiles *service.ProfileService
}

func NewProfileHandler(p *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: p}
}

type profileResp struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type updateProfileReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Get returns the profile of the authenticated user. A structurally valid
// token whose account has since been deleted lands here and gets a 404.
func (h *ProfileHandler) Get(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Profiles.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}

	return c.JSON(http.StatusOK, profileResp{
		Name:     u.Name,
		Email:    u.Email,
		Username: u.Username,
	})
}

// Update merges the supplied fields into the profile. Omitted or empty
// fields keep their current values; a supplied password is re-hashed.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Profiles.Update(ctx, uid, service.ProfileFields{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrDuplicateUser):
			return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}

// Delete removes the account. Outstanding session tokens are not revoked;
// they keep validating until expiry and then fail profile lookups with 404.
func (h *ProfileHandler) Delete(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Profiles.Delete(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete profile failed"})
	}

	_ = service.PublishAuthEvent(ctx, queue.AuthEvent{
		Type:   queue.EventUserDeleted,
		UserID: uid,
	})

	return c.NoContent(http.StatusNoContent)
}
