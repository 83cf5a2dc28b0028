package session

import (
	"encoding/json"
	"time"

	"github.com/tenantflow/authcore/identity"
)

// Envelope binds a bearer token to the identity it was issued for, together
// with its validity window. The token is opaque to this package; its
// cryptographic validity is established by the login collaborator.
type Envelope struct {
	Token     string
	Identity  identity.Identity
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// storedEnvelope is the persisted shape of an envelope. Expiry is kept as
// epoch milliseconds so the stored record stays portable across clients.
type storedEnvelope struct {
	Token     string            `json:"token"`
	Identity  identity.Identity `json:"identity"`
	ExpiresAt int64             `json:"expiresAt"`
}

// MarshalJSON serializes the envelope in its storage shape.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(storedEnvelope{
		Token:     e.Token,
		Identity:  e.Identity,
		ExpiresAt: e.ExpiresAt.UnixMilli(),
	})
}

// UnmarshalJSON restores an envelope from its storage shape. IssuedAt is not
// persisted; a restored envelope carries only what expiry checks need.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var stored storedEnvelope
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}
	e.Token = stored.Token
	e.Identity = stored.Identity
	e.IssuedAt = time.Time{}
	e.ExpiresAt = time.UnixMilli(stored.ExpiresAt)
	return nil
}
