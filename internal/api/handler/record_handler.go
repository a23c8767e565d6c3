package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamops/opstracker/internal/core/ports"
)

// RecordHandler handles the /api/records resource.
type RecordHandler struct {
	records ports.RecordService
	cache   SnapshotCache
	logger  zerolog.Logger
}

func NewRecordHandler(records ports.RecordService, cache SnapshotCache, logger zerolog.Logger) *RecordHandler {
	return &RecordHandler{records: records, cache: cache, logger: logger}
}

func (h *RecordHandler) List(c echo.Context) error {
	records, err := h.records.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecordResponses(records))
}

func (h *RecordHandler) Create(c echo.Context) error {
	var req recordPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := req.toDomain()
	if err != nil {
		return err
	}

	created, err := h.records.Create(c.Request().Context(), rec)
	if err != nil {
		return err
	}

	invalidateSnapshot(c.Request().Context(), h.cache, h.logger)
	return c.JSON(http.StatusCreated, toRecordResponse(*created))
}

func (h *RecordHandler) Update(c echo.Context) error {
	var req recordPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := req.toDomain()
	if err != nil {
		return err
	}

	updated, err := h.records.Update(c.Request().Context(), rec)
	if err != nil {
		return err
	}

	invalidateSnapshot(c.Request().Context(), h.cache, h.logger)
	return c.JSON(http.StatusOK, toRecordResponse(*updated))
}

func (h *RecordHandler) Delete(c echo.Context) error {
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.records.Delete(c.Request().Context(), req.ID); err != nil {
		return err
	}

	invalidateSnapshot(c.Request().Context(), h.cache, h.logger)
	return c.JSON(http.StatusOK, messageResponse{Message: "Record deleted successfully"})
}
