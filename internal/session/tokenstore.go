package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore is the durable home of the one persisted value this client owns:
// the bearer token.
type TokenStore interface {
	// Load returns the persisted token, or "" when absent or expired.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// ---- file-backed store ----

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// FileTokenStore persists the token as JSON in the user config dir, surviving
// process restarts the way the SPA's localStorage entry survives reloads.
type FileTokenStore struct {
	dir string
}

// NewFileTokenStore uses $XDG_CONFIG_HOME/bookhub (or ~/.config/bookhub).
func NewFileTokenStore() *FileTokenStore {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return &FileTokenStore{dir: filepath.Join(v, "bookhub")}
	}
	home, _ := os.UserHomeDir()
	return &FileTokenStore{dir: filepath.Join(home, ".config", "bookhub")}
}

func (f *FileTokenStore) path() string { return filepath.Join(f.dir, "token.json") }

// Load reads the token file. Missing or expired tokens read as absent.
func (f *FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(f.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", nil // corrupt file treated as absent
	}
	if tf.AccessToken == "" || (!tf.ExpiresAt.IsZero() && time.Now().After(tf.ExpiresAt)) {
		return "", nil
	}
	return tf.AccessToken, nil
}

// Save writes the token with its expiry taken from the JWT exp claim when the
// token parses as one (no signature check; expiry is advisory on this side).
func (f *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return err
	}
	tf := tokenFile{AccessToken: token, ExpiresAt: tokenExpiry(token)}
	b, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path(), b, 0o600)
}

// Clear removes the token file. Absent file is fine.
func (f *FileTokenStore) Clear() error {
	err := os.Remove(f.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(24 * time.Hour)
}

// ---- in-memory store ----

// MemoryTokenStore keeps the token in memory; used in tests and ephemeral runs.
type MemoryTokenStore struct {
	mu  sync.Mutex
	tok string
}

func (m *MemoryTokenStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tok, nil
}

func (m *MemoryTokenStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok = token
	return nil
}

func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok = ""
	return nil
}
