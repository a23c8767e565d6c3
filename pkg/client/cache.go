package client

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/teamops/opstracker/internal/core/domain"
)

// Cache is the single source of truth the views render from. It holds the
// in-memory snapshot of users and records and mediates every mutation:
//
//   - Record mutations are optimistic: the snapshot changes first, the
//     persistence call follows, and a failure rolls the snapshot back to its
//     pre-mutation value. The error is returned, never retried.
//   - User mutations are remote-first: the snapshot only changes after the
//     store confirmed, since user rows gate authentication.
//
// Views must never mutate the returned slices; accessors hand out copies and
// the update marker tells dependents when to recompute.
type Cache struct {
	api *API
	log zerolog.Logger

	mu         sync.Mutex
	users      []domain.User
	records    []domain.ProductionRecord
	lastUpdate uint64
}

func NewCache(api *API, log zerolog.Logger) *Cache {
	return &Cache{api: api, log: log}
}

// Refresh replaces the whole snapshot with the store's current contents.
// Used for the initial load and manual refresh; never merged field by field.
func (c *Cache) Refresh(ctx context.Context) error {
	users, records, err := c.api.Bootstrap(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = users
	c.records = records
	c.lastUpdate++
	return nil
}

// Users returns a copy of the user snapshot.
func (c *Cache) Users() []domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.User, len(c.users))
	copy(out, c.users)
	return out
}

// Records returns a copy of the record snapshot.
func (c *Cache) Records() []domain.ProductionRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ProductionRecord, len(c.records))
	copy(out, c.records)
	return out
}

// LastUpdate is the monotonic marker dependents compare to decide whether to
// recompute derived views. It advances on every snapshot change, including a
// rollback — the views must recompute then too.
func (c *Cache) LastUpdate() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUpdate
}

// --- Record mutations (optimistic) ---

// AddRecord validates, applies the record to the snapshot, then persists it.
// On persistence failure the snapshot is rolled back and the error returned.
// The stored record (with any server-assigned fields) replaces the optimistic
// entry on success.
func (c *Cache) AddRecord(ctx context.Context, rec domain.ProductionRecord) (*domain.ProductionRecord, error) {
	if err := rec.Validate(); err != nil {
		// Invalid input never reaches the store and never touches the snapshot.
		return nil, err
	}

	c.mu.Lock()
	c.records = append(c.records, rec)
	idx := len(c.records) - 1
	c.lastUpdate++
	c.mu.Unlock()

	created, err := c.api.CreateRecord(ctx, rec)
	if err != nil {
		c.mu.Lock()
		c.records = append(c.records[:idx], c.records[idx+1:]...)
		c.lastUpdate++
		c.mu.Unlock()
		c.log.Error().Err(err).Str("record_id", rec.ID).Msg("record create failed, rolled back")
		return nil, err
	}

	c.mu.Lock()
	c.records[idx] = *created
	c.lastUpdate++
	c.mu.Unlock()
	return created, nil
}

// UpdateRecord applies the new version optimistically and restores the
// previous version if persistence fails.
func (c *Cache) UpdateRecord(ctx context.Context, rec domain.ProductionRecord) (*domain.ProductionRecord, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	idx := c.indexOfRecord(rec.ID)
	if idx < 0 {
		c.mu.Unlock()
		return nil, domain.ErrRecordNotFound
	}
	prev := c.records[idx]
	c.records[idx] = rec
	c.lastUpdate++
	c.mu.Unlock()

	updated, err := c.api.UpdateRecord(ctx, rec)
	if err != nil {
		c.mu.Lock()
		if i := c.indexOfRecord(rec.ID); i >= 0 {
			c.records[i] = prev
		}
		c.lastUpdate++
		c.mu.Unlock()
		c.log.Error().Err(err).Str("record_id", rec.ID).Msg("record update failed, rolled back")
		return nil, err
	}

	c.mu.Lock()
	if i := c.indexOfRecord(rec.ID); i >= 0 {
		c.records[i] = *updated
	}
	c.lastUpdate++
	c.mu.Unlock()
	return updated, nil
}

// DeleteRecord removes the record optimistically and reinserts it if
// persistence fails.
func (c *Cache) DeleteRecord(ctx context.Context, id string) error {
	c.mu.Lock()
	idx := c.indexOfRecord(id)
	if idx < 0 {
		c.mu.Unlock()
		return domain.ErrRecordNotFound
	}
	removed := c.records[idx]
	c.records = append(c.records[:idx], c.records[idx+1:]...)
	c.lastUpdate++
	c.mu.Unlock()

	if err := c.api.DeleteRecord(ctx, id); err != nil {
		c.mu.Lock()
		c.records = append(c.records, domain.ProductionRecord{})
		copy(c.records[idx+1:], c.records[idx:])
		c.records[idx] = removed
		c.lastUpdate++
		c.mu.Unlock()
		c.log.Error().Err(err).Str("record_id", id).Msg("record delete failed, rolled back")
		return err
	}
	return nil
}

// --- User mutations (remote-first) ---

// AddUser persists first; the snapshot only changes once the store accepted
// the user. A rejected user must never appear created locally.
func (c *Cache) AddUser(ctx context.Context, u domain.User) (*domain.User, error) {
	created, err := c.api.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.users = append(c.users, *created)
	c.lastUpdate++
	c.mu.Unlock()
	return created, nil
}

func (c *Cache) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	updated, err := c.api.UpdateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for i := range c.users {
		if c.users[i].ID == updated.ID {
			c.users[i] = *updated
			break
		}
	}
	c.lastUpdate++
	c.mu.Unlock()
	return updated, nil
}

// DeleteUser removes the user remotely, then mirrors the server-side record
// cascade in the local snapshot.
func (c *Cache) DeleteUser(ctx context.Context, id string) error {
	if err := c.api.DeleteUser(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	users := c.users[:0]
	for _, u := range c.users {
		if u.ID != id {
			users = append(users, u)
		}
	}
	c.users = users

	records := c.records[:0]
	for _, r := range c.records {
		if r.UserID != id {
			records = append(records, r)
		}
	}
	c.records = records
	c.lastUpdate++
	c.mu.Unlock()
	return nil
}

// indexOfRecord finds a record by id. Callers must hold c.mu.
func (c *Cache) indexOfRecord(id string) int {
	for i := range c.records {
		if c.records[i].ID == id {
			return i
		}
	}
	return -1
}
