// Package authcore assembles the authorization core of a multi-tenant SaaS
// client: the session lifecycle, the route guard, the outbound transport
// hook, and optionally a token manager. The session state lives in one
// explicitly owned Core instance handed to whoever needs it, never in
// package-level state.
package authcore

import (
	"time"

	"github.com/pkg/errors"

	"github.com/tenantflow/authcore/guard"
	"github.com/tenantflow/authcore/identity"
	"github.com/tenantflow/authcore/internal/config"
	"github.com/tenantflow/authcore/session"
	"github.com/tenantflow/authcore/token"
	"github.com/tenantflow/authcore/transport"
)

// Core wires the authorization components over a single session store.
type Core struct {
	Sessions  *session.Lifecycle
	Guard     *guard.Guard
	Transport *transport.AuthTransport

	// Tokens is non-nil only when a signing secret is configured; otherwise
	// tokens come from an external login collaborator and stay opaque.
	Tokens *token.Manager

	ttl time.Duration
}

// CoreOption configures the assembled Core.
type CoreOption func(*coreSettings)

type coreSettings struct {
	now      func() time.Time
	notifier transport.Notifier
	store    session.Store
}

// WithNowTime sets the clock for every time-dependent component (primarily
// for testing).
func WithNowTime(nowFunc func() time.Time) CoreOption {
	return func(cs *coreSettings) {
		cs.now = nowFunc
	}
}

// WithNotifier sets the sink for user-visible notices raised by the
// transport layer.
func WithNotifier(notifier transport.Notifier) CoreOption {
	return func(cs *coreSettings) {
		cs.notifier = notifier
	}
}

// WithStore overrides the session store selected by configuration.
func WithStore(store session.Store) CoreOption {
	return func(cs *coreSettings) {
		cs.store = store
	}
}

// New assembles a Core from environment configuration. A configured session
// file selects the persistent store, so a session issued before a restart is
// picked up again; otherwise the session lives in memory.
func New(options ...CoreOption) (*Core, error) {
	return NewWithConfig(config.FromEnv(), options...)
}

// NewWithConfig assembles a Core from an explicit configuration.
func NewWithConfig(cfg config.Config, options ...CoreOption) (*Core, error) {
	settings := &coreSettings{now: time.Now}
	for _, opt := range options {
		opt(settings)
	}

	store := settings.store
	if store == nil {
		if path := cfg.GetSessionFile(); path != "" {
			fileStore, err := session.NewFileStore(path)
			if err != nil {
				return nil, errors.Wrap(err, "[authcore.New] session file store")
			}
			store = fileStore
		} else {
			store = session.NewMemoryStore()
		}
	}

	sessions, err := session.NewLifecycle(store, session.WithNowTime(settings.now))
	if err != nil {
		return nil, errors.Wrap(err, "[authcore.New] session lifecycle")
	}

	routeGuard, err := guard.New(sessions)
	if err != nil {
		return nil, errors.Wrap(err, "[authcore.New] route guard")
	}

	transportOpts := []transport.TransportOption{}
	if settings.notifier != nil {
		transportOpts = append(transportOpts, transport.WithNotifier(settings.notifier))
	}
	authTransport, err := transport.New(sessions, transportOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "[authcore.New] transport")
	}

	core := &Core{
		Sessions:  sessions,
		Guard:     routeGuard,
		Transport: authTransport,
		ttl:       cfg.GetSessionTTL(),
	}

	if secret := cfg.GetSigningSecret(); secret != "" {
		manager, err := token.New([]byte(secret), cfg.GetIssuer(), cfg.GetSessionTTL(),
			token.WithNowTime(settings.now))
		if err != nil {
			return nil, errors.Wrap(err, "[authcore.New] token manager")
		}
		core.Tokens = manager
	}

	return core, nil
}

// Establish activates a session from a login collaborator's output: an
// opaque token, the authenticated identity, and the validity window.
func (c *Core) Establish(rawToken string, id identity.Identity, ttl time.Duration) error {
	if err := id.Validate(); err != nil {
		return errors.Wrap(err, "[Core.Establish] invalid identity")
	}
	return c.Sessions.Issue(rawToken, id, ttl)
}

// EstablishFromToken activates a session from one of the module's own signed
// tokens, deriving the identity from its claims and the TTL from
// configuration.
func (c *Core) EstablishFromToken(rawToken string) error {
	if c.Tokens == nil {
		return errors.New("[Core.EstablishFromToken] no signing secret configured")
	}
	id, err := c.Tokens.Parse(rawToken)
	if err != nil {
		return errors.Wrap(err, "[Core.EstablishFromToken] parse token")
	}
	return c.Sessions.Issue(rawToken, id, c.ttl)
}

// Logout tears the session down immediately and unconditionally.
func (c *Core) Logout() {
	c.Sessions.Invalidate()
}
