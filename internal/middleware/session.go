package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shuttersbysenators.com/web/internal/nav"
)

const (
	sessionCookieName = "SHUTTERS_WEB_SESSION"
	sessionTTL        = 30 * 24 * time.Hour
)

// SessionData is persisted in a signed cookie.
type SessionData struct {
	ID        string    `json:"id"`
	Nav       nav.State `json:"nav"`
	Flash     string    `json:"flash,omitempty"`
	CSRFToken string    `json:"csrf,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool
}

// SessionStore signs and verifies session cookies.
type SessionStore struct {
	key    []byte
	secure bool
	now    func() time.Time
}

// NewSessionStore builds a store. An empty signingKey generates a
// process-ephemeral key, which only suits development.
func NewSessionStore(signingKey string, secure bool, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := []byte(signingKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			logger.Error("session: generate signing key", zap.Error(err))
			key = []byte("insecure-dev-key-please-set-SHUTTERS_WEB_SESSION__SIGNING_KEY")
		}
		logger.Warn("session: using ephemeral signing key; set SHUTTERS_WEB_SESSION__SIGNING_KEY in production")
	}
	return &SessionStore{key: key, secure: secure, now: time.Now}
}

// Secure reports whether cookies are marked Secure.
func (s *SessionStore) Secure() bool { return s.secure }

// Session loads or initializes a session and stores it in request context.
func Session(store *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sd, fromCookie := store.read(r)
			if sd.ID == "" {
				sd.ID = uuid.NewString()
				sd.CreatedAt = store.now().UTC()
				sd.UpdatedAt = sd.CreatedAt
				sd.CSRFToken = newCSRFToken()
				sd.dirty = true
			}
			rw := NewResponseRecorder(w)
			// the cookie must be set before the first byte goes out
			rw.SetBeforeWrite(func(w http.ResponseWriter) {
				if sd.dirty || !fromCookie {
					store.write(w, sd)
				}
			})
			next.ServeHTTP(rw, r.WithContext(WithSession(r.Context(), sd)))
			if !rw.Written() && (sd.dirty || !fromCookie) {
				store.write(w, sd)
			}
		})
	}
}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *SessionData) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// GetSession returns session data from context. Outside the Session
// middleware it returns a detached empty session.
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// SetNav records a navigation snapshot.
func (s *SessionData) SetNav(st nav.State) {
	if s.Nav == st {
		return
	}
	s.Nav = st
	s.MarkDirty()
}

// PopFlash returns and clears the flash message.
func (s *SessionData) PopFlash() string {
	msg := s.Flash
	if msg != "" {
		s.Flash = ""
		s.MarkDirty()
	}
	return msg
}

// read parses and verifies the session cookie
func (s *SessionStore) read(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	payloadB64, sigB64, ok := strings.Cut(c.Value, ".")
	if !ok {
		return &SessionData{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(payloadB64)
	if err != nil {
		return &SessionData{}, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigB64)
	if err != nil {
		return &SessionData{}, false
	}
	if !hmac.Equal(sig, s.sign(payload)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payload, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

// Encode returns the signed cookie value for sd.
func (s *SessionStore) Encode(sd *SessionData) string {
	b, _ := json.Marshal(sd)
	return base64.RawURLEncoding.EncodeToString(b) + "." + base64.RawURLEncoding.EncodeToString(s.sign(b))
}

func (s *SessionStore) write(w http.ResponseWriter, sd *SessionData) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.Encode(sd),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.now().Add(sessionTTL),
	})
}

func (s *SessionStore) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(payload)
	return mac.Sum(nil)
}
