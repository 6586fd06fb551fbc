package client

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"
	requestIDHeader     = "X-Request-ID"
)

// Invoker sends a request and returns the raw response.
type Invoker func(req *http.Request) (*http.Response, error)

// Interceptor observes or rewrites a request before handing it to next, and
// may inspect the response on the way back.
type Interceptor func(req *http.Request, next Invoker) (*http.Response, error)

// chain composes interceptors so that the first one is the outermost.
func chain(final Invoker, interceptors ...Interceptor) Invoker {
	invoke := final
	for i := len(interceptors) - 1; i >= 0; i-- {
		ic, next := interceptors[i], invoke
		invoke = func(req *http.Request) (*http.Response, error) {
			return ic(req, next)
		}
	}
	return invoke
}

type ctxKey string

const (
	accessTokenKey ctxKey = "access_token"
	retryStateKey  ctxKey = "retry_state"
)

// WithAccessToken makes requests issued with ctx carry token instead of the
// bound TokenSource's. Used while a session is being established.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

func accessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey).(string)
	return token, ok
}

// retryState is the per-call "already retried" mark. It is shared by every
// attempt made for one logical request.
type retryState struct {
	retried atomic.Bool
}

func withRetryState(ctx context.Context) context.Context {
	if _, ok := ctx.Value(retryStateKey).(*retryState); ok {
		return ctx
	}
	return context.WithValue(ctx, retryStateKey, &retryState{})
}

// markRetried sets the mark and reports whether it was already set.
func markRetried(ctx context.Context) (already bool) {
	st, ok := ctx.Value(retryStateKey).(*retryState)
	if !ok {
		return false
	}
	return st.retried.Swap(true)
}

func (c *HTTPClient) requestIDInterceptor(req *http.Request, next Invoker) (*http.Response, error) {
	if req.Header.Get(requestIDHeader) == "" {
		req.Header.Set(requestIDHeader, uuid.NewString())
	}
	return next(req)
}

func (c *HTTPClient) accessTokenInterceptor(req *http.Request, next Invoker) (*http.Response, error) {
	ctx := req.Context()

	token, ok := accessTokenFromContext(ctx)
	if !ok {
		if b := c.sessionBinding(); b != nil {
			token = b.Token(ctx)
		}
	}

	req.Header.Del(authorizationHeader)
	if token != "" {
		req.Header.Set(authorizationHeader, "Bearer "+token)
	}

	return next(req)
}

func (c *HTTPClient) unauthorizedInterceptor(req *http.Request, next Invoker) (*http.Response, error) {
	resp, err := next(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	ctx := req.Context()
	if markRetried(ctx) {
		return resp, nil
	}

	c.logger.Warn(ctx, "authentication rejected, dropping session",
		"method", req.Method, "path", req.URL.Path, "request_id", req.Header.Get(requestIDHeader))

	if b := c.sessionBinding(); b != nil {
		b.SessionExpired(ctx)
	}

	return resp, nil
}
