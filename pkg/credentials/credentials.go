// Package credentials stores and resolves plotly account credentials.
//
// Credentials come from two places, in order of precedence:
//
//  1. Environment: PLOTLY_USERNAME, PLOTLY_API_KEY, PLOTLY_ENDPOINT
//  2. Credentials file: ~/.config/matplotly/credentials.toml
//
// The file is written by `matplotly auth login` with mode 0600. Environment
// variables override file values field by field, so CI can inject an API
// key while keeping the username from the file.
package credentials

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/mpld3/matplotlylib/pkg/errors"
)

// Environment variable names consulted by [Store.Resolve].
const (
	EnvUsername = "PLOTLY_USERNAME"
	EnvAPIKey   = "PLOTLY_API_KEY"
	EnvEndpoint = "PLOTLY_ENDPOINT"
)

// Credentials identifies a plotly account.
type Credentials struct {
	Username string `toml:"username"`
	APIKey   string `toml:"api_key"`
	// Endpoint overrides the default upload endpoint; empty selects the
	// hosted service.
	Endpoint string `toml:"endpoint,omitempty"`
}

// Validate checks that the credentials are usable for an upload.
func (c *Credentials) Validate() error {
	if err := errors.ValidateUsername(c.Username); err != nil {
		return err
	}
	if err := errors.ValidateAPIKey(c.APIKey); err != nil {
		return err
	}
	if c.Endpoint != "" {
		return errors.ValidateURL(c.Endpoint)
	}
	return nil
}

// Store reads and writes the credentials file.
type Store struct {
	mu   sync.RWMutex
	path string
}

// NewStore creates a credentials store. If path is empty, the default
// location ~/.config/matplotly/credentials.toml is used.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "matplotly", "credentials.toml")
	}
	return &Store{path: path}, nil
}

// Path returns the credentials file location.
func (s *Store) Path() string { return s.path }

// Load reads credentials from the file.
func (s *Store) Load() (*Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeCredentialsNotFound,
				"no credentials file at %s, run `matplotly auth login`", s.path)
		}
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	var creds Credentials
	if err := toml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	return &creds, nil
}

// Save writes credentials to the file with owner-only permissions,
// creating the parent directory if needed.
func (s *Store) Save(creds *Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(creds); err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	return nil
}

// Delete removes the credentials file. Deleting a missing file is not an
// error.
func (s *Store) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials file: %w", err)
	}
	return nil
}

// Resolve returns the effective credentials: file values overridden field
// by field from the environment. A missing file is fine as long as the
// environment supplies a complete set.
func (s *Store) Resolve() (*Credentials, error) {
	creds, err := s.Load()
	if err != nil {
		if errors.GetCode(err) != errors.ErrCodeCredentialsNotFound {
			return nil, err
		}
		creds = &Credentials{}
	}

	if v := os.Getenv(EnvUsername); v != "" {
		creds.Username = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		creds.APIKey = v
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		creds.Endpoint = v
	}

	if creds.Username == "" || creds.APIKey == "" {
		return nil, errors.New(errors.ErrCodeCredentialsNotFound,
			"no credentials configured: run `matplotly auth login` or set %s and %s", EnvUsername, EnvAPIKey)
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return creds, nil
}
