package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Cursor identifies the last item of a page ordered by (date DESC, createdAt DESC, id DESC).
type Cursor struct {
	Date      time.Time
	CreatedAt time.Time
	ID        string
}

// After reports whether an item with the given sort key comes after the cursor in
// descending order, i.e. belongs to a later page.
func (c Cursor) After(date, createdAt time.Time, id string) bool {
	if !date.Equal(c.Date) {
		return date.Before(c.Date)
	}
	if !createdAt.Equal(c.CreatedAt) {
		return createdAt.Before(c.CreatedAt)
	}
	return id < c.ID
}

// EncodeToken creates a base64 encoded token from an item's date, creation time and id.
// This is used for consistent pagination across the storage backends.
func EncodeToken(date time.Time, createdAt time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s|%s", date.UTC().Format(timeFormat), createdAt.UTC().Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a Cursor.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return Cursor{Date: date, CreatedAt: createdAt, ID: parts[2]}, nil
}
