package stubapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Account is a stub login.
type Account struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// Tokens issues and resolves opaque bearer tokens.
type Tokens struct {
	mu       sync.RWMutex
	accounts []Account
	issued   map[string]Account
}

func NewTokens(accounts ...Account) *Tokens {
	return &Tokens{accounts: accounts, issued: make(map[string]Account)}
}

// Issue returns a fresh token when the credentials match an account.
func (t *Tokens) Issue(username, password string) (string, bool) {
	for _, a := range t.accounts {
		if a.Username == username && a.Password == password && username != "" {
			tok, err := newToken()
			if err != nil {
				return "", false
			}
			t.mu.Lock()
			t.issued[tok] = a
			t.mu.Unlock()
			return tok, true
		}
	}
	return "", false
}

func (t *Tokens) Lookup(token string) (Account, bool) {
	if token == "" {
		return Account{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	a, ok := t.issued[token]
	return a, ok
}

func (t *Tokens) Accounts() []Account {
	return append([]Account(nil), t.accounts...)
}

func newToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func readBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func allowed(have Role, roles []Role) bool {
	for _, r := range roles {
		if r == have {
			return true
		}
	}
	return false
}

type accountKey struct{}

// AccountFrom returns the account attached by RequireRole.
func AccountFrom(ctx context.Context) (Account, bool) {
	a, ok := ctx.Value(accountKey{}).(Account)
	return a, ok
}

// RequireRole rejects requests without a known bearer token (401) and
// tokens whose account has none of roles (403).
func RequireRole(tokens *Tokens, roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acct, ok := tokens.Lookup(readBearer(r))
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeJSON(w, http.StatusUnauthorized, detail("Not authenticated"))
				return
			}
			if !allowed(acct.Role, roles) {
				writeJSON(w, http.StatusForbidden, detail("Not enough permissions"))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accountKey{}, acct)))
		})
	}
}
