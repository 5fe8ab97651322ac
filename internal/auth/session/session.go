package session

import (
	"time"

	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
)

// Session is the server-side record backing an access token. Tokens outlive
// nothing: deleting the session revokes every token minted for it.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the session is still usable at the given instant.
func (s Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// ErrNotFound keeps store-level misses consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "session not found")
