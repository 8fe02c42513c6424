package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	appErrors "github.com/mangazone/storefront/internal/errors"
)

// Store persists the session between runs, the CLI analog of the
// browser's local storage.
type Store interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

type fileStore struct {
	path string
}

func NewFileStore(path string) (Store, error) {

	if path == "" {

		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, appErrors.BadRequestError("Cannot resolve a session path").WithError(err)
		}

		path = filepath.Join(configDir, "mangazone", "session.json")
	}

	return &fileStore{path: path}, nil
}

// Load returns an anonymous session when no file exists.
func (f *fileStore) Load() (*Session, error) {

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Session{}, nil
		}

		return nil, appErrors.BadRequestError("Failed to read session file").WithError(err)
	}

	var s Session

	if err := json.Unmarshal(data, &s); err != nil {
		return nil, appErrors.BadRequestError("Failed to parse session file").WithError(err)
	}

	return &s, nil
}

func (f *fileStore) Save(s *Session) error {

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return appErrors.BadRequestError("Failed to create session directory").WithError(err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return appErrors.BadRequestError("Failed to encode session").WithError(err)
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return appErrors.BadRequestError("Failed to write session file").WithError(err)
	}

	return nil
}

func (f *fileStore) Clear() error {

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return appErrors.BadRequestError("Failed to clear session").WithError(err)
	}

	return nil
}
