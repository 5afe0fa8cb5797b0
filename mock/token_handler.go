package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"
)

const tokenTTL = 30 * time.Minute

type tokenIssuer struct {
	mu     sync.Mutex
	issued map[string]time.Time
}

func newTokenIssuer() *tokenIssuer {
	return &tokenIssuer{issued: make(map[string]time.Time)}
}

// TokenHandler implements the client-credentials grant. Any non-empty
// client id and secret are accepted.
func (t *tokenIssuer) TokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	if r.PostForm.Get("grant_type") != "client_credentials" {
		writeErrors(w, http.StatusBadRequest, "UNSUPPORTED GRANT TYPE", "only client_credentials is supported")
		return
	}
	id, secret, ok := r.BasicAuth()
	if !ok {
		id, secret = r.PostForm.Get("client_id"), r.PostForm.Get("client_secret")
	}
	if id == "" || secret == "" {
		writeErrors(w, http.StatusUnauthorized, "INVALID CLIENT", "client credentials are invalid")
		return
	}

	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	token := hex.EncodeToString(buf)

	t.mu.Lock()
	t.issued[token] = time.Now().Add(tokenTTL)
	t.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"type":         "amadeusOAuth2Token",
		"client_id":    id,
		"token_type":   "Bearer",
		"access_token": token,
		"expires_in":   int(tokenTTL.Seconds()),
		"state":        "approved",
	})
}

func (t *tokenIssuer) RequireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if ok {
			t.mu.Lock()
			expires, found := t.issued[token]
			t.mu.Unlock()
			ok = found && time.Now().Before(expires)
		}
		if !ok {
			writeErrors(w, http.StatusUnauthorized, "Access token expired", "the access token is missing or expired")
			return
		}
		next(w, r)
	}
}
