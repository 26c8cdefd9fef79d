package domain

import "time"

// DefaultSessionTTL is the fixed expiry window applied to new sessions when
// no override is configured.
const DefaultSessionTTL = 8 * time.Hour

// Session ties an opaque bearer token to a username/role pair. Sessions are
// never refreshed; they expire at ExpiresAt and are removed lazily on the
// first access after expiry (plus a periodic sweep).
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the session is past its expiry window at now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
