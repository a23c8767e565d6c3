package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamops/opstracker/internal/core/ports"
)

// UserHandler handles the /api/users resource.
type UserHandler struct {
	users  ports.UserService
	cache  SnapshotCache
	logger zerolog.Logger
}

func NewUserHandler(users ports.UserService, cache SnapshotCache, logger zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, cache: cache, logger: logger}
}

// List returns every user with passwords stripped.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req userPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.users.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}

	invalidateSnapshot(c.Request().Context(), h.cache, h.logger)
	return c.JSON(http.StatusCreated, created)
}

// Update serves both PUT and PATCH; the two verbs are historical aliases.
func (h *UserHandler) Update(c echo.Context) error {
	var req userPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.users.Update(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}

	invalidateSnapshot(c.Request().Context(), h.cache, h.logger)
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a user and cascades to every record they own.
func (h *UserHandler) Delete(c echo.Context) error {
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.Delete(c.Request().Context(), req.ID); err != nil {
		return err
	}

	invalidateSnapshot(c.Request().Context(), h.cache, h.logger)
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
