package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore persists the session envelope as a JSON file so an authenticated
// session survives process restarts. The on-disk shape is
// {token, identity, expiresAt} with expiry in epoch milliseconds.
type FileStore struct {
	path string
	lock sync.Mutex
}

// NewFileStore creates a file-backed store at path. The parent directory is
// created if missing.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("[NewFileStore] path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "[NewFileStore] create session directory")
	}
	return &FileStore{path: path}, nil
}

func (fs *FileStore) Save(envelope *Envelope) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	data, err := json.Marshal(envelope)
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] marshal envelope")
	}

	// Write then rename so a crash mid-write never leaves a torn file.
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.Save] write envelope")
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return errors.Wrap(err, "[FileStore.Save] rename envelope")
	}
	return nil
}

func (fs *FileStore) Load() (*Envelope, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileStore.Load] read envelope")
	}

	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, errors.Wrap(err, "[FileStore.Load] unmarshal envelope")
	}
	return &envelope, nil
}

func (fs *FileStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] remove envelope")
	}
	return nil
}
