// Package services contains application services for the gynecare client.
// This file defines the auth state provider: it owns the in-memory session,
// mirrors it into the session store and publishes state changes to
// subscribers.
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gynecare/internal/client/client"
	"github.com/dmitrijs2005/gynecare/internal/client/models"
	"github.com/dmitrijs2005/gynecare/internal/client/session"
	"github.com/dmitrijs2005/gynecare/internal/client/validation"
	"github.com/dmitrijs2005/gynecare/internal/logging"
)

const (
	loginFailedMessage        = "Failed to login. Please check your credentials."
	registrationFailedMessage = "Registration failed. Please try again."
	profileFailedMessage      = "Failed to update profile."
	notLoggedInMessage        = "You are not logged in."
)

// ErrNotAuthenticated is returned by operations that need a current user.
var ErrNotAuthenticated = errors.New("not authenticated")

// Status is the coarse auth state.
type Status int

const (
	StatusUnknown Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is a snapshot of the provider. User is a copy and may be modified by
// the receiver. Loading is set while an operation is in flight. Err is the
// failure of the last operation, or the reason the session was dropped.
type State struct {
	Status  Status
	User    *models.User
	Loading bool
	Err     error
}

// AuthError is a rejected login, registration or profile update.
// Message is ready to be shown to the user.
type AuthError struct {
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

// ClientCredentials identify this application to the token endpoint.
type ClientCredentials struct {
	ID     string
	Secret string
}

// AuthService is the single owner of the user session.
//
// Contract:
//   - Restore: re-derive the session from the store at startup.
//   - Login / Register: establish a session; on failure the state is anonymous.
//   - Logout: drop the session; never fails.
//   - UpdateProfile: PATCH the current user and persist the result.
//   - SessionExpired / Token: the client.SessionBinding used by the HTTP client.
//   - State / Subscribe: observe the provider.
type AuthService interface {
	client.SessionBinding

	Restore(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, reg models.Registration, confirm string) error
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error

	State() State
	Subscribe(fn func(State)) (unsubscribe func())
}

type listener struct {
	id int
	fn func(State)
}

type authService struct {
	client client.Client
	store  session.Store
	creds  ClientCredentials
	logger logging.Logger
	now    func() time.Time

	// opMu serializes mutating operations; mu guards the fields below and is
	// never held across I/O.
	opMu sync.Mutex

	mu        sync.RWMutex
	status    Status
	session   *models.Session
	gen       uint64
	inFlight  bool
	lastErr   error
	listeners []listener
	nextID    int
}

type AuthOption func(*authService)

// WithClock overrides time.Now, used for token expiry.
func WithClock(now func() time.Time) AuthOption {
	return func(a *authService) { a.now = now }
}

// NewAuthService constructs the provider in the unknown state. Call Restore
// before use.
func NewAuthService(c client.Client, store session.Store, creds ClientCredentials, logger logging.Logger, opts ...AuthOption) AuthService {
	a := &authService{
		client: c,
		store:  store,
		creds:  creds,
		logger: logger.With("module", "auth"),
		now:    time.Now,
		status: StatusUnknown,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *authService) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshotLocked()
}

func (a *authService) snapshotLocked() State {
	st := State{Status: a.status, Loading: a.inFlight || a.status == StatusUnknown, Err: a.lastErr}
	if a.session != nil {
		u := a.session.User
		st.User = &u
	}
	return st
}

func (a *authService) Subscribe(fn func(State)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextID++
	id := a.nextID
	a.listeners = append(a.listeners, listener{id: id, fn: fn})

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		for i, l := range a.listeners {
			if l.id == id {
				a.listeners = append(a.listeners[:i:i], a.listeners[i+1:]...)
				return
			}
		}
	}
}

// transition swaps the session and notifies listeners outside the lock.
// Every swap bumps gen.
func (a *authService) transition(status Status, sess *models.Session, reason error) {
	a.mu.Lock()
	a.setLocked(status, sess, reason)
	a.notifyUnlock()
}

func (a *authService) setLocked(status Status, sess *models.Session, reason error) {
	a.status = status
	a.session = sess
	a.lastErr = reason
	a.gen++
}

// notifyUnlock releases mu and delivers the current snapshot.
func (a *authService) notifyUnlock() {
	st := a.snapshotLocked()
	ls := append([]listener(nil), a.listeners...)
	a.mu.Unlock()

	for _, l := range ls {
		l.fn(st)
	}
}

// begin marks an operation in flight and clears the previous failure. The
// returned func ends it.
func (a *authService) begin() func() {
	a.mu.Lock()
	a.inFlight = true
	a.lastErr = nil
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		a.inFlight = false
		a.mu.Unlock()
	}
}

// fail records err without changing the session.
func (a *authService) fail(err error) {
	a.mu.Lock()
	a.lastErr = err
	a.notifyUnlock()
}

func (a *authService) authenticated(sess *models.Session) {
	a.transition(StatusAuthenticated, sess, nil)
}

func (a *authService) anonymous(reason error) {
	a.transition(StatusAnonymous, nil, reason)
}

// current returns a copy of the session and the generation it belongs to.
func (a *authService) current() (*models.Session, uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return nil, a.gen
	}
	s := *a.session
	return &s, a.gen
}

// replace installs sess only if no transition happened since gen.
func (a *authService) replace(gen uint64, sess *models.Session) bool {
	a.mu.Lock()
	if a.gen != gen || a.session == nil {
		a.mu.Unlock()
		return false
	}
	a.setLocked(StatusAuthenticated, sess, nil)
	a.notifyUnlock()
	return true
}

// Token implements client.TokenSource.
func (a *authService) Token(context.Context) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return ""
	}
	return a.session.Token
}

func (a *authService) clearStore(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear session store", "error", err)
	}
}

// Restore loads a stored session. An expired one is discarded. A storage
// failure leaves the provider anonymous and is returned.
func (a *authService) Restore(ctx context.Context) error {
	a.opMu.Lock()
	defer a.opMu.Unlock()
	defer a.begin()()

	sess, err := a.store.Load(ctx)
	if err != nil {
		a.anonymous(nil)
		return err
	}
	if sess == nil {
		a.anonymous(nil)
		return nil
	}
	if sess.Expired(a.now()) {
		a.logger.Info(ctx, "stored session expired", "user_id", sess.User.ID, "expired_at", sess.ExpiresAt())
		a.clearStore(ctx)
		a.anonymous(client.ErrAuthenticationExpired)
		return nil
	}

	a.logger.Info(ctx, "session restored", "user_id", sess.User.ID)
	a.authenticated(sess)
	return nil
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	if err := validation.Login(email, password); err != nil {
		return err
	}

	a.opMu.Lock()
	defer a.opMu.Unlock()
	defer a.begin()()

	return a.login(ctx, email, password)
}

// login runs the password grant, fetches the user with the new token and
// persists the session. Callers hold opMu.
func (a *authService) login(ctx context.Context, email, password string) error {
	err := a.establish(ctx, email, password)
	if err != nil {
		a.logger.Warn(ctx, "login failed", "error", err)
		a.clearStore(ctx)
		a.anonymous(err)
		return err
	}
	return nil
}

func (a *authService) establish(ctx context.Context, email, password string) error {
	tok, err := a.client.RequestToken(ctx, models.TokenRequest{
		GrantType:    "password",
		Username:     email,
		Password:     password,
		ClientID:     a.creds.ID,
		ClientSecret: a.creds.Secret,
	})
	if err != nil {
		return newAuthError(err, loginFailedMessage)
	}

	user, err := a.client.GetCurrentUser(client.WithAccessToken(ctx, tok.AccessToken))
	if err != nil {
		return newAuthError(err, loginFailedMessage)
	}

	sess := models.NewSession(tok.AccessToken, tok.ExpiresIn, *user, a.now())
	if err := a.store.Save(ctx, sess); err != nil {
		return &AuthError{Message: loginFailedMessage, Err: err}
	}

	a.logger.Info(ctx, "logged in", "user_id", user.ID)
	a.authenticated(sess)
	return nil
}

func (a *authService) Register(ctx context.Context, reg models.Registration, confirm string) error {
	if err := validation.Registration(reg, confirm); err != nil {
		return err
	}

	a.opMu.Lock()
	defer a.opMu.Unlock()
	defer a.begin()()

	user, err := a.client.CreateUser(ctx, reg)
	if err != nil {
		a.logger.Warn(ctx, "registration rejected", "error", err)
		aerr := newAuthError(err, registrationFailedMessage)
		a.fail(aerr)
		return aerr
	}
	a.logger.Info(ctx, "registered", "user_id", user.ID)

	return a.login(ctx, reg.Email, reg.Password)
}

func (a *authService) Logout(ctx context.Context) {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	a.clearStore(ctx)
	a.anonymous(nil)
	a.logger.Info(ctx, "logged out")
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	sess, gen := a.current()
	if sess == nil {
		return &AuthError{Message: notLoggedInMessage, Err: ErrNotAuthenticated}
	}
	if err := validation.Profile(upd); err != nil {
		return err
	}

	defer a.begin()()

	user, err := a.client.UpdateUser(ctx, sess.User.ID, upd)
	if err != nil {
		aerr := newAuthError(err, profileFailedMessage)
		if !errors.Is(err, client.ErrAuthenticationExpired) {
			a.fail(aerr)
		}
		return aerr
	}

	sess.User = *user
	if _, g := a.current(); g != gen {
		return &AuthError{Message: notLoggedInMessage, Err: ErrNotAuthenticated}
	}
	if err := a.store.Save(ctx, sess); err != nil {
		aerr := &AuthError{Message: profileFailedMessage, Err: err}
		a.fail(aerr)
		return aerr
	}

	// SessionExpired swaps state before clearing the store, so a failed swap
	// here means the saved copy must go too.
	if !a.replace(gen, sess) {
		a.clearStore(ctx)
		return &AuthError{Message: notLoggedInMessage, Err: ErrNotAuthenticated}
	}

	a.logger.Info(ctx, "profile updated", "user_id", user.ID)
	return nil
}

// SessionExpired is called by the HTTP client on the first 401 of a request.
// It does not take opMu: it may run inside Login. The state is dropped before
// the store is cleared.
func (a *authService) SessionExpired(ctx context.Context) {
	a.mu.Lock()
	changed := a.status != StatusAnonymous || a.session != nil
	if !changed {
		a.mu.Unlock()
		a.clearStore(ctx)
		return
	}
	a.setLocked(StatusAnonymous, nil, client.ErrAuthenticationExpired)
	a.notifyUnlock()

	a.logger.Warn(ctx, "session expired")
	a.clearStore(ctx)
}

// newAuthError builds the user-facing error for a failed API call.
func newAuthError(err error, fallback string) *AuthError {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return &AuthError{Message: fallback, Err: err}
	}

	ae := &AuthError{Message: apiErr.Message(), Fields: apiErr.Fields, Err: err}
	if len(apiErr.Fields) > 0 && apiErr.Description == "" && apiErr.Detail == "" {
		ae.Message = apiErr.FieldMessages()
	}
	if ae.Message == "" {
		ae.Message = fallback
	}
	return ae
}
