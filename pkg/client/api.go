// Package client is the data layer consumed by the tracker UIs. It mirrors
// the server's users and records in memory, applies record mutations
// optimistically with rollback on persistence failure, and keeps the session
// identity alive across restarts.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/teamops/opstracker/internal/core/domain"
)

const defaultRequestTimeout = 15 * time.Second

// APIError is a non-2xx response that does not map to a known domain error.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// API wraps the record store's HTTP surface. All timeouts are delegated to
// the underlying transport; there is no retry and no request cancellation
// beyond the caller's context.
type API struct {
	http *resty.Client
}

// NewAPI builds an API client for the given base URL, e.g. "http://localhost:8080".
func NewAPI(baseURL string) *API {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultRequestTimeout).
		SetHeader("Content-Type", "application/json")
	return &API{http: c}
}

// bootstrapPayload is the /api/data response.
type bootstrapPayload struct {
	Users   []domain.User             `json:"users"`
	Records []domain.ProductionRecord `json:"records"`
}

// Bootstrap fetches the full users+records snapshot.
func (a *API) Bootstrap(ctx context.Context) ([]domain.User, []domain.ProductionRecord, error) {
	var out bootstrapPayload
	resp, err := a.http.R().SetContext(ctx).SetResult(&out).Get("/api/data")
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: %w", err)
	}
	if resp.IsError() {
		return nil, nil, apiError(resp)
	}
	return out.Users, out.Records, nil
}

// Login checks credentials and returns the matching user, password stripped.
func (a *API) Login(ctx context.Context, username, password string) (*domain.User, error) {
	body := map[string]string{"username": username, "password": password}
	var out domain.User
	resp, err := a.http.R().SetContext(ctx).SetBody(body).SetResult(&out).Post("/api/login")
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, domain.ErrInvalidCredentials
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}

// ListUsers fetches every user, passwords stripped.
func (a *API) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	resp, err := a.http.R().SetContext(ctx).SetResult(&out).Get("/api/users")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return out, nil
}

func (a *API) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	var out domain.User
	resp, err := a.http.R().SetContext(ctx).SetBody(u).SetResult(&out).Post("/api/users")
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}

func (a *API) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	var out domain.User
	resp, err := a.http.R().SetContext(ctx).SetBody(u).SetResult(&out).Put("/api/users")
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrUserNotFound
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}

func (a *API) DeleteUser(ctx context.Context, id string) error {
	resp, err := a.http.R().SetContext(ctx).SetBody(map[string]string{"id": id}).Delete("/api/users")
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return domain.ErrUserNotFound
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func (a *API) CreateRecord(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error) {
	var out domain.ProductionRecord
	resp, err := a.http.R().SetContext(ctx).SetBody(r).SetResult(&out).Post("/api/records")
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}

func (a *API) UpdateRecord(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error) {
	var out domain.ProductionRecord
	resp, err := a.http.R().SetContext(ctx).SetBody(r).SetResult(&out).Put("/api/records")
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrRecordNotFound
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}

func (a *API) DeleteRecord(ctx context.Context, id string) error {
	resp, err := a.http.R().SetContext(ctx).SetBody(map[string]string{"id": id}).Delete("/api/records")
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return domain.ErrRecordNotFound
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

// apiError turns an error response into an *APIError, extracting the server's
// message envelope when present.
func apiError(resp *resty.Response) error {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil || envelope.Message == "" {
		envelope.Message = resp.Status()
	}
	return &APIError{Status: resp.StatusCode(), Message: envelope.Message}
}
