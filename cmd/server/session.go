package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Simplici0/cbglow/internal/pricing"
)

const sessionCookieName = "cbglow_session"

// session is the per-visitor state: the carton counts entered so far.
type session struct {
	ID      string      `json:"sid"`
	Cartons map[int]int `json:"cartons,omitempty"`
}

func newSession() session {
	return session{ID: uuid.NewString()}
}

// apply returns the visitor's view of products. Ids that are not in the catalog are ignored.
func (s session) apply(products []pricing.Product) []pricing.Product {
	out := append([]pricing.Product(nil), products...)
	for _, p := range products {
		if carton, ok := s.Cartons[p.ID]; ok {
			out = pricing.SetCarton(out, p.ID, pricing.NormalizeCarton(carton))
		}
	}
	return out
}

// remember stores the carton count of every product.
func (s *session) remember(products []pricing.Product) {
	s.Cartons = make(map[int]int, len(products))
	for _, p := range products {
		s.Cartons[p.ID] = p.Carton
	}
}

type sessionStore struct {
	secret []byte
}

func newSessionStore(secret []byte) *sessionStore {
	return &sessionStore{secret: secret}
}

func (st *sessionStore) sign(payload string) []byte {
	mac := hmac.New(sha256.New, st.secret)
	_, _ = mac.Write([]byte(payload))
	return mac.Sum(nil)
}

func (st *sessionStore) encode(s session) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + hex.EncodeToString(st.sign(payload)), nil
}

func (st *sessionStore) decode(value string) (session, bool) {
	payload, signature, ok := strings.Cut(value, ".")
	if !ok {
		return session{}, false
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return session{}, false
	}
	if !hmac.Equal(provided, st.sign(payload)) {
		return session{}, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return session{}, false
	}

	var s session
	if err := json.Unmarshal(raw, &s); err != nil {
		return session{}, false
	}
	if s.ID == "" {
		return session{}, false
	}
	return s, true
}

// load returns the request's session, or a fresh one when the cookie is missing or invalid.
func (st *sessionStore) load(r *http.Request) (session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return newSession(), true
	}
	s, ok := st.decode(cookie.Value)
	if !ok {
		return newSession(), true
	}
	return s, false
}

func (st *sessionStore) save(w http.ResponseWriter, s session) error {
	value, err := st.encode(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (st *sessionStore) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
