package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gynecare/internal/client/models"
	"github.com/dmitrijs2005/gynecare/internal/logging"
)

const contentTypeJSON = "application/json"

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
	extra   []Interceptor
	invoke  Invoker

	mu      sync.RWMutex
	binding SessionBinding
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithInterceptors appends interceptors that run after the built-in
// request-id and access-token ones and before the unauthorized check.
func WithInterceptors(ics ...Interceptor) Option {
	return func(c *HTTPClient) { c.extra = append(c.extra, ics...) }
}

// NewHTTPClient returns a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, logger logging.Logger, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: scheme and host are required", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger.With("module", "api_client"),
	}
	for _, opt := range opts {
		opt(c)
	}

	ics := []Interceptor{c.requestIDInterceptor, c.accessTokenInterceptor}
	ics = append(ics, c.extra...)
	ics = append(ics, c.unauthorizedInterceptor)
	c.invoke = chain(c.http.Do, ics...)

	return c, nil
}

// Bind attaches the session owner. It is called once during start-up, after
// the owner has been constructed with this client.
func (c *HTTPClient) Bind(b SessionBinding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.binding = b
}

func (c *HTTPClient) sessionBinding() SessionBinding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.binding
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)
	return req, nil
}

// do sends the request through the interceptor chain and decodes a 2xx JSON
// reply into out (when out is non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	ctx = withRetryState(ctx)

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	started := time.Now()
	resp, err := c.invoke(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "api call",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", req.Header.Get(requestIDHeader), "elapsed", time.Since(started))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s %s: read body: %w", ErrUnavailable, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s reply: %w", method, path, err)
	}
	return nil
}

// pagedList accepts both a bare JSON array and a DRF page {"results": [...]}.
type pagedList[T any] []T

func (p *pagedList[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var page struct {
			Results []T `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return err
		}
		*p = page.Results
		return nil
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return err
	}
	*p = items
	return nil
}

func (c *HTTPClient) RequestToken(ctx context.Context, req models.TokenRequest) (*models.TokenResponse, error) {
	var resp models.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/token/", req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, errors.New("token endpoint returned no access_token")
	}
	return &resp, nil
}

func (c *HTTPClient) GetCurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, reg models.Registration) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/users/", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/users/%d/", id), upd, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ListChatSessions(ctx context.Context) ([]models.ChatSession, error) {
	var sessions pagedList[models.ChatSession]
	if err := c.do(ctx, http.MethodGet, "/api/chat-sessions/", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *HTTPClient) GetChatSession(ctx context.Context, id int64) (*models.ChatSession, error) {
	var s models.ChatSession
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/chat-sessions/%d/", id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) CreateChatSession(ctx context.Context, req models.NewChatSession) (*models.ChatSession, error) {
	var s models.ChatSession
	if err := c.do(ctx, http.MethodPost, "/api/chat-sessions/", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, sessionID int64, req models.SendMessageRequest) (*models.SendMessageResult, error) {
	var res models.SendMessageResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/chat-sessions/%d/send-message/", sessionID), req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var doctors pagedList[models.Doctor]
	if err := c.do(ctx, http.MethodGet, "/api/doctors/", nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// ListAppointments returns the caller's own appointments.
func (c *HTTPClient) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	var list pagedList[models.Appointment]
	if err := c.do(ctx, http.MethodGet, "/api/appointments/", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateAppointment(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	var a models.Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments/", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
