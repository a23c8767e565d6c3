package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamops/opstracker/internal/api/metrics"
	"github.com/teamops/opstracker/internal/core/ports"
)

// SnapshotCache is the slice of the Redis cache the handlers need. Nil-able:
// a deployment without Redis simply serves every bootstrap from Mongo.
type SnapshotCache interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, payload []byte) error
	Invalidate(ctx context.Context) error
}

// DataHandler serves GET /api/data — the bootstrap load of the full snapshot.
type DataHandler struct {
	users   ports.UserService
	records ports.RecordService
	cache   SnapshotCache
	logger  zerolog.Logger
}

func NewDataHandler(users ports.UserService, records ports.RecordService, cache SnapshotCache, logger zerolog.Logger) *DataHandler {
	return &DataHandler{users: users, records: records, cache: cache, logger: logger}
}

// Get returns every user (passwords stripped) and every record, provisioning
// the default admin first so a fresh database is immediately usable. The
// serialized payload is cached in Redis until the next mutation.
func (h *DataHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.users.EnsureDefaultAdmin(ctx); err != nil {
		return err
	}

	if h.cache != nil {
		cached, err := h.cache.Get(ctx)
		switch {
		case err != nil:
			// Cache trouble never fails the bootstrap.
			metrics.SnapshotCacheTotal.WithLabelValues("bypass").Inc()
			h.logger.Warn().Err(err).Msg("snapshot cache unavailable")
		case cached != nil:
			metrics.SnapshotCacheTotal.WithLabelValues("hit").Inc()
			return c.JSONBlob(http.StatusOK, cached)
		default:
			metrics.SnapshotCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	users, err := h.users.List(ctx)
	if err != nil {
		return err
	}
	records, err := h.records.List(ctx)
	if err != nil {
		return err
	}

	payload := dataResponse{Users: users, Records: toRecordResponses(records)}

	if h.cache != nil {
		if blob, err := json.Marshal(payload); err == nil {
			if err := h.cache.Set(ctx, blob); err != nil {
				h.logger.Warn().Err(err).Msg("snapshot cache store failed")
			}
		}
	}

	return c.JSON(http.StatusOK, payload)
}

// invalidateSnapshot drops the cached bootstrap payload after a mutation.
// Best-effort: the TTL bounds staleness if this fails.
func invalidateSnapshot(ctx context.Context, cache SnapshotCache, logger zerolog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("snapshot cache invalidation failed")
	}
}
