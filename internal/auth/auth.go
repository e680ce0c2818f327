// package auth manages the client-credentials token used for catalog requests.
//
// The token is persisted as JSON so a later process start can reuse it. A
// missing, corrupt, or expired persisted token is never an error: the
// manager transparently requests a fresh one. The only unrecoverable
// condition is absent client credentials, because no acquisition path exists
// without them.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Overboard/AskMinstrel/internal/shared"
	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Credentials is the operator-supplied client identifier/secret pair. It is
// read-only input and is never cached or persisted by this package.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// LoadCredentials reads the credentials JSON file at path. A missing or
// unreadable file maps to [shared.ErrCredentialsMissing]: without it no
// token can ever be obtained.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrCredentialsMissing, path)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", shared.ErrCredentialsMissing, path, err)
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: %s lacks client_id or client_secret", shared.ErrCredentialsMissing, path)
	}
	return &creds, nil
}

// Manager owns the process-wide token: it restores a persisted token at
// construction, refreshes it when missing or expired, and persists every
// newly acquired token before handing it out. Refreshes are single-flight:
// concurrent callers block on one outstanding credential request.
type Manager struct {
	path   string
	conf   *clientcredentials.Config
	logger *log.Logger

	mu    sync.Mutex
	token *oauth2.Token
}

// NewManager creates a token manager persisting to path and acquiring tokens
// from tokenURL. It fails with [shared.ErrCredentialsMissing] when creds is
// absent or incomplete; no token file is created in that case.
func NewManager(creds *Credentials, tokenURL, path string, logger *log.Logger) (*Manager, error) {
	if creds == nil || creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client credentials are required", shared.ErrCredentialsMissing)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	m := &Manager{
		path: path,
		conf: &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     tokenURL,
		},
		logger: logger,
	}
	m.token = m.load()
	return m, nil
}

// Token returns a valid access token, refreshing and persisting first when
// the current one is missing or expired. Acquisition failures are reported
// as [shared.ErrTokenRefresh] so a later call can retry.
func (m *Manager) Token(ctx context.Context) (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// re-check under the lock: a concurrent caller may have refreshed while
	// this one was waiting
	if m.token.Valid() {
		return m.token, nil
	}

	token, err := m.conf.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTokenRefresh, err)
	}
	m.logger.Info("obtained new token", "expiry", token.Expiry)

	m.token = token
	m.persist(token)
	return token, nil
}

// load restores the persisted token from the last session. Absence is not an
// error; a file that does not decode or does not hold a token is discarded.
// Either way a nil result means the next Token call refreshes.
func (m *Manager) load() *oauth2.Token {
	data, err := os.ReadFile(m.path)
	if err != nil {
		m.logger.Warn("no token file found, will request new")
		return nil
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		m.logger.Error("unreadable token file, will request new", "err", err)
		return nil
	}
	if token.AccessToken == "" {
		m.logger.Error("token file holds no access token, will request new")
		return nil
	}

	m.logger.Info("restored token from file", "expiry", token.Expiry)
	return &token
}

// persist saves the token for the next process lifetime. Failure is logged
// and swallowed: the session can proceed on the in-memory token.
func (m *Manager) persist(token *oauth2.Token) {
	data, err := json.Marshal(token)
	if err != nil {
		m.logger.Warn("token not saved", "err", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		m.logger.Warn("token not saved", "err", err)
		return
	}
	if err := os.WriteFile(m.path, data, 0600); err != nil {
		m.logger.Warn("token not saved", "err", err)
		return
	}
	m.logger.Info("saved token to file", "path", m.path)
}
