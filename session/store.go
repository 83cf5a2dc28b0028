package session

// Store persists the single session envelope for a client. There is no
// concurrent multi-session support: Save overwrites whatever was held before.
//
// Load returns (nil, nil) when no envelope is stored; Clear on an empty store
// is a no-op. Implementations must be safe for concurrent readers.
type Store interface {
	// Save persists the envelope, replacing any prior one.
	Save(envelope *Envelope) error

	// Load returns the stored envelope, or nil if none is stored. Load does
	// not check expiry.
	Load() (*Envelope, error)

	// Clear removes the stored envelope.
	Clear() error
}
