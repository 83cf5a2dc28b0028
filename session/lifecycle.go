// Package session owns the client's session envelope: issuing it after a
// successful login, answering validity checks on every navigation and
// outbound request, and tearing it down on logout or when the server rejects
// the credential.
package session

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tenantflow/authcore/identity"
)

// Lifecycle drives the session state machine:
//
//	Unauthenticated -> Active -> Expired/Invalidated
//
// The stored envelope has a single writer context (the active client), so the
// lifecycle itself takes no locks; stores serialize their own access. Expiry
// is lazy: there is no background timer, an expired envelope is discovered
// and cleared on the next IsValid call. Clearing is idempotent, so concurrent
// readers observing expiry at the same moment are harmless.
type Lifecycle struct {
	store Store
	now   func() time.Time
}

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithNowTime sets the clock function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(l *Lifecycle) {
		l.now = nowFunc
	}
}

// NewLifecycle creates a session lifecycle over the given store. The store
// may already hold a persisted envelope from a previous run; it is picked up
// as-is and subject to the usual expiry check.
func NewLifecycle(store Store, options ...Option) (*Lifecycle, error) {
	if store == nil {
		return nil, errors.New("[NewLifecycle] store is required")
	}

	l := &Lifecycle{
		store: store,
		now:   time.Now,
	}
	for _, opt := range options {
		opt(l)
	}
	return l, nil
}

// Issue transitions the session to Active, overwriting any prior envelope.
// There is no concurrent multi-session support: one client, one session.
// Rejecting a missing or malformed token is the caller's responsibility.
func (l *Lifecycle) Issue(token string, id identity.Identity, ttl time.Duration) error {
	issuedAt := l.now()
	envelope := &Envelope{
		Token:     token,
		Identity:  id,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(ttl),
	}

	if err := l.store.Save(envelope); err != nil {
		return errors.Wrap(err, "[Lifecycle.Issue] save envelope")
	}

	log.Info().
		Str("user_id", id.UserID).
		Str("tenant_id", id.TenantID).
		Str("role", string(id.Role)).
		Time("expires_at", envelope.ExpiresAt).
		Msg("session issued")
	return nil
}

// Current returns the stored envelope if one exists. It does not check
// expiry; callers that need a validity answer use IsValid.
func (l *Lifecycle) Current() (*Envelope, bool) {
	envelope, err := l.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("session load failed")
		return nil, false
	}
	if envelope == nil {
		return nil, false
	}
	return envelope, true
}

// IsValid reports whether an unexpired session is active. Discovering an
// expired envelope clears it, so the first false answer and every one after
// it come from the same cleared state.
func (l *Lifecycle) IsValid() bool {
	envelope, ok := l.Current()
	if !ok {
		return false
	}

	if l.now().After(envelope.ExpiresAt) {
		log.Info().
			Str("user_id", envelope.Identity.UserID).
			Time("expired_at", envelope.ExpiresAt).
			Msg("session expired")
		if err := l.store.Clear(); err != nil {
			log.Warn().Err(err).Msg("failed to clear expired session")
		}
		return false
	}
	return true
}

// Invalidate clears the session unconditionally. It is triggered by a
// user-initiated logout or by an authentication rejection reported from any
// downstream call; invalidating an already-invalidated session is a no-op.
func (l *Lifecycle) Invalidate() {
	envelope, _ := l.store.Load()
	if err := l.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear session")
		return
	}
	if envelope != nil {
		log.Info().
			Str("user_id", envelope.Identity.UserID).
			Msg("session invalidated")
	}
}
