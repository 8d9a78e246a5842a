// Package pagination implements the opaque keyset cursors used by every
// listing endpoint. Listings order by created_at descending with id as the
// tie-breaker, so a cursor carries both.
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the page size applied when the caller sends none.
	DefaultLimit = 25
	// MaxLimit caps how many rows any single page may request.
	MaxLimit = 100

	cursorSep = ":"
)

// ErrMalformedCursor is returned when a cursor decodes but does not carry
// the expected timestamp and id pair.
var ErrMalformedCursor = errors.New("malformed cursor")

// Params holds the raw pagination inputs from a request.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor is the decoded keyset position of the last row on the previous page.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// NormalizeLimit clamps limit into [1, MaxLimit], substituting DefaultLimit
// when the caller sends zero or less.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// LimitWithBuffer is NormalizeLimit plus one row used to detect a next page.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// EncodeCursor serializes the keyset position into an opaque URL-safe token.
func EncodeCursor(c Cursor) string {
	raw := c.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSep + c.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// ParseCursor decodes an opaque token back into its keyset position. A blank
// token means the first page and yields (nil, nil).
func ParseCursor(token string) (*Cursor, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	sep := strings.LastIndex(string(raw), cursorSep)
	if sep < 0 {
		return nil, ErrMalformedCursor
	}

	createdAt, err := time.Parse(time.RFC3339Nano, string(raw[:sep]))
	if err != nil {
		return nil, fmt.Errorf("%w: bad timestamp", ErrMalformedCursor)
	}
	id, err := uuid.Parse(string(raw[sep+1:]))
	if err != nil {
		return nil, fmt.Errorf("%w: bad id", ErrMalformedCursor)
	}
	return &Cursor{CreatedAt: createdAt, ID: id}, nil
}
