package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultSessionFile is the default name of the session file
const DefaultSessionFile = "session.yaml"

// sessionFile is the on-disk representation of the stored credentials.
type sessionFile struct {
	// Version of the session file format
	Version string `yaml:"version"`
	// Token is the current session token
	Token string `yaml:"token"`
	// TenantID is the active tenant identifier
	TenantID string `yaml:"tenant_id"`
}

// FileStore is a Store persisted to a YAML file so the session survives
// process restarts. Writes go to disk before the in-memory state is updated.
type FileStore struct {
	mu    sync.Mutex
	path  string
	state sessionFile
}

// DefaultSessionPath returns the default path for the session file.
// It uses the OS-specific config directory (e.g., ~/.config/billingctl on Linux).
func DefaultSessionPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "billingctl", DefaultSessionFile), nil
}

// NewFileStore creates a file-backed store at the given path, loading any
// previously persisted session. A missing file is not an error; the store
// starts empty. An unreadable or malformed file is an error so a corrupted
// session is never silently treated as logged-out.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = DefaultSessionPath()
		if err != nil {
			return nil, err
		}
	}

	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("unable to read session file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("unable to parse session file: %w", err)
	}
	return s, nil
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

func (s *FileStore) Tenant() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TenantID
}

func (s *FileStore) SetSession(token, tenant string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := sessionFile{
		Version:  "0.1.0",
		Token:    token,
		TenantID: tenant,
	}
	if err := s.write(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := sessionFile{Version: "0.1.0"}
	if err := s.write(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// write persists the session state. The file carries 0600 permissions
// since it holds a live credential.
func (s *FileStore) write(state sessionFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), os.ModePerm); err != nil {
		return fmt.Errorf("unable to create session directory: %w", err)
	}
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("unable to serialize session: %w", err)
	}
	if err := os.WriteFile(s.path, data, os.FileMode(0600)); err != nil {
		return fmt.Errorf("unable to write session file: %w", err)
	}
	return nil
}
