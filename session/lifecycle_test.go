package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tenantflow/authcore/identity"
	"github.com/tenantflow/authcore/session"
)

var testIdentity = identity.Identity{
	UserID:   "user-1",
	TenantID: "tenant-1",
	Role:     identity.RoleUser,
	Email:    "john.doe@example.com",
	FullName: "John Doe",
}

// fakeClock provides an adjustable now() for lifecycle tests.
type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (fc *fakeClock) now() time.Time {
	return fc.current
}

func (fc *fakeClock) advance(d time.Duration) {
	fc.current = fc.current.Add(d)
}

func setupLifecycle(t *testing.T) (*session.Lifecycle, *fakeClock) {
	t.Helper()

	clock := newFakeClock()
	lifecycle, err := session.NewLifecycle(session.NewMemoryStore(), session.WithNowTime(clock.now))
	require.NoError(t, err)
	return lifecycle, clock
}

func TestNewLifecycleRequiresStore(t *testing.T) {
	_, err := session.NewLifecycle(nil)
	require.Error(t, err)
}

func TestNoSessionIsInvalid(t *testing.T) {
	lifecycle, _ := setupLifecycle(t)

	require.False(t, lifecycle.IsValid())
	_, ok := lifecycle.Current()
	require.False(t, ok)
}

func TestIssueActivatesSession(t *testing.T) {
	lifecycle, clock := setupLifecycle(t)

	require.NoError(t, lifecycle.Issue("token-abc", testIdentity, time.Hour))
	require.True(t, lifecycle.IsValid())

	envelope, ok := lifecycle.Current()
	require.True(t, ok)
	require.Equal(t, "token-abc", envelope.Token)
	require.Equal(t, testIdentity, envelope.Identity)
	require.Equal(t, clock.now(), envelope.IssuedAt)
	require.Equal(t, clock.now().Add(time.Hour), envelope.ExpiresAt)
}

func TestIssueOverwritesPriorSession(t *testing.T) {
	lifecycle, _ := setupLifecycle(t)

	require.NoError(t, lifecycle.Issue("first", testIdentity, time.Hour))

	second := testIdentity
	second.UserID = "user-2"
	require.NoError(t, lifecycle.Issue("second", second, time.Hour))

	envelope, ok := lifecycle.Current()
	require.True(t, ok)
	require.Equal(t, "second", envelope.Token)
	require.Equal(t, "user-2", envelope.Identity.UserID)
}

func TestLazyExpiry(t *testing.T) {
	lifecycle, clock := setupLifecycle(t)

	require.NoError(t, lifecycle.Issue("token-abc", testIdentity, 3600*time.Second))

	clock.advance(3599 * time.Second)
	require.True(t, lifecycle.IsValid())

	clock.advance(2 * time.Second) // now at t0+3601s
	require.False(t, lifecycle.IsValid())

	// Expiry observation cleared the envelope.
	_, ok := lifecycle.Current()
	require.False(t, ok)

	// Idempotent: every subsequent check stays false.
	require.False(t, lifecycle.IsValid())
}

func TestValidExactlyAtExpiry(t *testing.T) {
	lifecycle, clock := setupLifecycle(t)

	require.NoError(t, lifecycle.Issue("token-abc", testIdentity, time.Hour))
	clock.advance(time.Hour)

	// now == expiresAt is still valid; only now > expiresAt invalidates.
	require.True(t, lifecycle.IsValid())
}

func TestCurrentDoesNotCheckExpiry(t *testing.T) {
	lifecycle, clock := setupLifecycle(t)

	require.NoError(t, lifecycle.Issue("token-abc", testIdentity, time.Hour))
	clock.advance(2 * time.Hour)

	// Current still reports the envelope until expiry is observed via IsValid.
	_, ok := lifecycle.Current()
	require.True(t, ok)

	require.False(t, lifecycle.IsValid())
	_, ok = lifecycle.Current()
	require.False(t, ok)
}

func TestInvalidateClearsSession(t *testing.T) {
	lifecycle, _ := setupLifecycle(t)

	require.NoError(t, lifecycle.Issue("token-abc", testIdentity, time.Hour))
	lifecycle.Invalidate()

	require.False(t, lifecycle.IsValid())
	_, ok := lifecycle.Current()
	require.False(t, ok)
}

func TestInvalidateIsIdempotent(t *testing.T) {
	lifecycle, _ := setupLifecycle(t)

	require.NoError(t, lifecycle.Issue("token-abc", testIdentity, time.Hour))

	// A burst of 401s from concurrent in-flight calls must be absorbed.
	lifecycle.Invalidate()
	lifecycle.Invalidate()
	lifecycle.Invalidate()

	require.False(t, lifecycle.IsValid())
}

func TestInvalidateWithoutSessionIsNoOp(t *testing.T) {
	lifecycle, _ := setupLifecycle(t)
	lifecycle.Invalidate()
	require.False(t, lifecycle.IsValid())
}

func TestReissueAfterInvalidate(t *testing.T) {
	lifecycle, _ := setupLifecycle(t)

	require.NoError(t, lifecycle.Issue("first", testIdentity, time.Hour))
	lifecycle.Invalidate()

	require.NoError(t, lifecycle.Issue("second", testIdentity, time.Hour))
	require.True(t, lifecycle.IsValid())
}
