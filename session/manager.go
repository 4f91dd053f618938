package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/careplus/go-frontdesk-client/access"
	"github.com/careplus/go-frontdesk-client/gateway"
	"github.com/careplus/go-frontdesk-client/notify"
	"github.com/careplus/go-frontdesk-client/tokenstore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultTokenTTL = 8 * time.Hour

// Gateway is the slice of the backend client the manager needs.
type Gateway interface {
	Login(ctx context.Context, creds gateway.Credentials) (*gateway.LoginResult, error)
	ValidateToken(ctx context.Context, token string) (bool, error)
}

// Manager owns the authentication state machine. Construct one per client
// lifetime with NewManager; tests construct a fresh instance per case.
//
// Subscriber callbacks are invoked synchronously in transition order and
// must not call back into the Manager.
type Manager struct {
	store    tokenstore.Store
	gw       Gateway
	notifier notify.Notifier
	log      zerolog.Logger
	nowTime  func() time.Time
	tokenTTL time.Duration

	lock        sync.Mutex
	state       State
	session     *Session
	attempts    int
	subscribers map[int]func(Event)
	nextSubID   int
	expiryTimer *time.Timer
}

// Option configures a Manager.
type Option func(*Manager)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(m *Manager) { m.nowTime = nowFunc }
}

// WithNotifier sets the sink for user-visible notifications.
func WithNotifier(n notify.Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithLogger sets the structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithTokenTTL sets the fallback session lifetime used when neither the
// login response nor the token itself carries an expiry.
func WithTokenTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.tokenTTL = ttl }
}

// NewManager initialises a Manager with its required dependencies.
func NewManager(store tokenstore.Store, gw Gateway, options ...Option) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] token store is required")
	}
	if gw == nil {
		return nil, errors.New("[NewManager] gateway is required")
	}

	m := &Manager{
		store:       store,
		gw:          gw,
		notifier:    notify.Discard{},
		log:         zerolog.Nop(),
		nowTime:     time.Now,
		tokenTTL:    defaultTokenTTL,
		state:       StateLoggedOut,
		subscribers: make(map[int]func(Event)),
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Subscribe registers an observer for authentication transitions. The
// returned function removes it.
func (m *Manager) Subscribe(fn func(Event)) func() {
	m.lock.Lock()
	defer m.lock.Unlock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	return func() {
		m.lock.Lock()
		defer m.lock.Unlock()
		delete(m.subscribers, id)
	}
}

// Login submits credentials. Once the attempt budget is exhausted it returns
// ErrLockedOut without contacting the gateway. Failures consume an attempt;
// success resets the counter to zero.
func (m *Manager) Login(ctx context.Context, creds gateway.Credentials) (*Identity, error) {
	m.lock.Lock()
	if m.attempts >= MaxLoginAttempts {
		m.lock.Unlock()
		m.notifier.Error("Sorry! You have to login within three tries! Application will close.")
		return nil, ErrLockedOut
	}
	m.state = StateAuthenticating
	m.lock.Unlock()

	result, err := m.gw.Login(ctx, creds)

	m.lock.Lock()
	defer m.lock.Unlock()

	if err != nil {
		return nil, m.failLoginLocked(err)
	}

	role, err := access.ParseRole(result.Role)
	if err != nil {
		m.log.Warn().Str("role", result.Role).Msg("login response carried unknown role")
		return nil, m.failLoginLocked(errors.Wrap(gateway.ErrLoginRejected, "unknown role"))
	}

	now := m.nowTime()
	identity := Identity{
		UserID:      result.UserID,
		Username:    creds.EmployeeID,
		DisplayName: result.FullName,
		Role:        role,
	}
	sess := &Session{
		Token:         result.Token,
		User:          identity,
		ExpiresAt:     m.resolveExpiry(result, now),
		EstablishedAt: now,
	}

	m.persistLocked(sess)
	m.session = sess
	m.state = StateAuthenticated
	m.attempts = 0
	m.scheduleExpiryLocked(sess.ExpiresAt, now)

	m.notifyLocked(Event{Authenticated: true, Identity: &identity})
	m.notifier.Info("Welcome, " + identity.DisplayName + "!")
	m.log.Info().Str("user", identity.UserID).Str("role", string(role)).Msg("authenticated")

	return &identity, nil
}

// failLoginLocked classifies a failed login, charges an attempt, and leaves
// the machine in LoggedOut.
func (m *Manager) failLoginLocked(err error) error {
	m.attempts++
	m.state = StateLoggedOut

	if errors.Is(err, gateway.ErrLoginRejected) {
		m.notifier.Error("Invalid credentials")
		m.log.Info().Int("attempts", m.attempts).Msg("login rejected")
		return errors.Wrap(ErrInvalidCredentials, err.Error())
	}
	m.notifier.Error("Login failed. Please try again.")
	m.log.Warn().Err(err).Int("attempts", m.attempts).Msg("login transport failure")
	return errors.Wrap(ErrTransport, err.Error())
}

// Logout terminates the session. It is idempotent and safe to call when
// already logged out: a second call terminates nothing and emits nothing.
func (m *Manager) Logout() {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.state == StateLoggedOut {
		return
	}
	m.terminateLocked()
	m.notifier.Info("Logged out successfully")
}

// HandleUnauthorized is the forced-logout entry point wired into the
// gateway's 401 hook and the expiry timer. Same effect as Logout plus the
// session-expired signal. Like Logout it emits nothing when there is no
// session to terminate, so a timer firing after an explicit logout (or a
// burst of 401 responses) cannot double-toast.
func (m *Manager) HandleUnauthorized() {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.state == StateLoggedOut {
		return
	}
	m.terminateLocked()
	m.notifier.Error("Session expired. Please login again.")
}

func (m *Manager) terminateLocked() {
	m.clearStoreLocked()
	if m.expiryTimer != nil {
		m.expiryTimer.Stop()
		m.expiryTimer = nil
	}
	m.session = nil
	m.state = StateLoggedOut
	m.notifyLocked(Event{Authenticated: false, Identity: nil})
}

// Restore rebuilds the session from the token store at process start. When a
// persisted bundle exists it optimistically reports authenticated right away
// so the UI does not flash logged-out, then validates the token in the
// background. Only an explicit rejection by the backend evicts the session;
// a validation transport failure never does.
func (m *Manager) Restore(ctx context.Context) bool {
	m.lock.Lock()

	token, tokenErr := m.store.Get(tokenstore.KeyToken)
	userJSON, userErr := m.store.Get(tokenstore.KeyUser)
	if tokenErr != nil || userErr != nil || token == "" {
		m.lock.Unlock()
		return false
	}

	var identity Identity
	if err := json.Unmarshal([]byte(userJSON), &identity); err != nil {
		m.log.Warn().Err(err).Msg("discarding unreadable persisted identity")
		m.clearStoreLocked()
		m.lock.Unlock()
		return false
	}
	if _, err := access.ParseRole(string(identity.Role)); err != nil {
		m.log.Warn().Str("role", string(identity.Role)).Msg("discarding persisted identity with unknown role")
		m.clearStoreLocked()
		m.lock.Unlock()
		return false
	}

	now := m.nowTime()
	expiresAt := m.persistedExpiryLocked(now)
	if expiresAt.Before(now) {
		m.log.Info().Time("expiresAt", expiresAt).Msg("persisted session already expired")
		m.clearStoreLocked()
		m.lock.Unlock()
		return false
	}

	sess := &Session{
		Token:         token,
		User:          identity,
		ExpiresAt:     expiresAt,
		EstablishedAt: m.persistedEstablishedLocked(now),
	}
	m.session = sess
	m.state = StateAuthenticated
	m.scheduleExpiryLocked(expiresAt, now)
	m.notifyLocked(Event{Authenticated: true, Identity: &identity})
	m.lock.Unlock()

	go m.validateRestored(ctx, token)
	return true
}

func (m *Manager) validateRestored(ctx context.Context, token string) {
	ok, err := m.gw.ValidateToken(ctx, token)
	if err != nil {
		// Network flakiness must not evict a valid session.
		m.log.Warn().Err(err).Msg("token validation unavailable, keeping session")
		return
	}
	if !ok {
		m.HandleUnauthorized()
	}
}

// CurrentIdentity returns a snapshot of the authenticated identity, or nil
// when no session is live. No side effects.
func (m *Manager) CurrentIdentity() *Identity {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.session == nil {
		return nil
	}
	identity := m.session.User
	return &identity
}

// Token returns the live bearer token, or "". Wire this into the gateway's
// token source.
func (m *Manager) Token() string {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.session == nil {
		return ""
	}
	return m.session.Token
}

// State returns the current machine state.
func (m *Manager) State() State {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.state
}

// LoginAttempts returns the failed-attempt count since the last success.
func (m *Manager) LoginAttempts() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.attempts
}

// LockedOut reports whether the attempt budget is exhausted.
func (m *Manager) LockedOut() bool {
	return m.LoginAttempts() >= MaxLoginAttempts
}

func (m *Manager) notifyLocked(event Event) {
	for _, fn := range m.subscribers {
		fn(event)
	}
}

func (m *Manager) persistLocked(sess *Session) {
	snapshot, err := json.Marshal(sess.User)
	if err != nil {
		m.log.Error().Err(err).Msg("identity snapshot marshal failed")
		return
	}
	for key, value := range map[string]string{
		tokenstore.KeyToken:       sess.Token,
		tokenstore.KeyUser:        string(snapshot),
		tokenstore.KeyTokenExpiry: sess.ExpiresAt.Format(time.RFC3339),
		tokenstore.KeyLoginTime:   sess.EstablishedAt.Format(time.RFC3339),
	} {
		if err := m.store.Set(key, value); err != nil {
			m.log.Error().Err(err).Str("key", key).Msg("token store write failed")
		}
	}
}

func (m *Manager) clearStoreLocked() {
	for _, key := range []string{
		tokenstore.KeyToken,
		tokenstore.KeyUser,
		tokenstore.KeyLoginTime,
		tokenstore.KeyTokenExpiry,
	} {
		if err := m.store.Remove(key); err != nil {
			m.log.Error().Err(err).Str("key", key).Msg("token store remove failed")
		}
	}
}

func (m *Manager) persistedExpiryLocked(now time.Time) time.Time {
	raw, err := m.store.Get(tokenstore.KeyTokenExpiry)
	if err == nil {
		if t, perr := time.Parse(time.RFC3339, raw); perr == nil {
			return t
		}
	}
	return now.Add(m.tokenTTL)
}

func (m *Manager) persistedEstablishedLocked(now time.Time) time.Time {
	raw, err := m.store.Get(tokenstore.KeyLoginTime)
	if err == nil {
		if t, perr := time.Parse(time.RFC3339, raw); perr == nil {
			return t
		}
	}
	return now
}

// resolveExpiry prefers the expiry the backend states, then the token's own
// exp claim, then the configured TTL.
func (m *Manager) resolveExpiry(result *gateway.LoginResult, now time.Time) time.Time {
	if result.ExpiresAt != "" {
		if t, err := time.Parse(time.RFC3339, result.ExpiresAt); err == nil {
			return t
		}
		m.log.Warn().Str("expiresAt", result.ExpiresAt).Msg("unparseable expiry in login response")
	}
	if token, _, err := jwt.NewParser().ParseUnverified(result.Token, jwt.MapClaims{}); err == nil {
		if exp, cerr := token.Claims.GetExpirationTime(); cerr == nil && exp != nil {
			return exp.Time
		}
	}
	return now.Add(m.tokenTTL)
}

func (m *Manager) scheduleExpiryLocked(expiresAt, now time.Time) {
	if m.expiryTimer != nil {
		m.expiryTimer.Stop()
		m.expiryTimer = nil
	}
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return
	}
	m.expiryTimer = time.AfterFunc(remaining, m.HandleUnauthorized)
}
