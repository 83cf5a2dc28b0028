// Package transport wraps the outbound HTTP layer so every request carries
// the current session credential and every authentication rejection feeds
// back into the session lifecycle.
package transport

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tenantflow/authcore/session"
)

// Notifier surfaces user-visible notices raised by the transport layer.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) {
	f(message)
}

// LogNotifier writes notices to the structured log. It is the default when
// no Notifier is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(message string) {
	log.Warn().Msg(message)
}

// Notices shown to the user on rejection responses.
const (
	sessionExpiredNotice = "Session expired. Please login again."
	notAuthorizedNotice  = "You are not authorized to perform this action"
)

var _ http.RoundTripper = (*AuthTransport)(nil)

// AuthTransport is an http.RoundTripper that attaches the session token as a
// bearer credential when one is present and watches responses for rejection
// signals.
//
// An authentication rejection (401) from any call invalidates the session
// globally, not just for the failing request; repeated 401s from concurrent
// in-flight calls are absorbed by the idempotent invalidation. An
// authorization rejection (403) only raises a notice and leaves the session
// alone.
type AuthTransport struct {
	base     http.RoundTripper
	sessions *session.Lifecycle
	notifier Notifier
}

// TransportOption configures an AuthTransport.
type TransportOption func(*AuthTransport)

// WithBase sets the underlying round tripper. Defaults to
// http.DefaultTransport.
func WithBase(base http.RoundTripper) TransportOption {
	return func(t *AuthTransport) {
		t.base = base
	}
}

// WithNotifier sets the notice sink. Defaults to LogNotifier.
func WithNotifier(notifier Notifier) TransportOption {
	return func(t *AuthTransport) {
		t.notifier = notifier
	}
}

// New creates an AuthTransport bound to the given session lifecycle.
func New(sessions *session.Lifecycle, options ...TransportOption) (*AuthTransport, error) {
	if sessions == nil {
		return nil, errors.New("[transport.New] session lifecycle is required")
	}

	t := &AuthTransport{
		base:     http.DefaultTransport,
		sessions: sessions,
		notifier: LogNotifier{},
	}
	for _, opt := range options {
		opt(t)
	}
	return t, nil
}

// Client returns an *http.Client using this transport.
func (t *AuthTransport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if envelope, ok := t.sessions.Current(); ok {
		// Clone before mutating: RoundTrippers must not modify the caller's
		// request.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+envelope.Token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		log.Info().
			Str("url", req.URL.String()).
			Msg("authentication rejected by server")
		t.sessions.Invalidate()
		t.notifier.Notify(sessionExpiredNotice)
	case http.StatusForbidden:
		t.notifier.Notify(notAuthorizedNotice)
	}
	return resp, nil
}
