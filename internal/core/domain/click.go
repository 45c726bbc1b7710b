package domain

import (
	"time"

	"github.com/google/uuid"
)

// ClickEvent is one recorded click on an ad. IPHash is a truncated
// one-way digest of the client address; the raw IP must never reach
// this struct. UserAgent is stored verbatim.
type ClickEvent struct {
	ID        uuid.UUID
	AdID      int64
	IPHash    string
	UserAgent string
	CreatedAt time.Time
}
