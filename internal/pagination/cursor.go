package pagination

import (
	"encoding/base64"
	"encoding/json"
)

// Cursor marks a page boundary: the primary sort value of the edge row plus
// its id as tiebreak. Tokens are URL-safe base64 of a small JSON payload.
type Cursor struct {
	Value string `json:"v"`
	ID    uint64 `json:"id"`
}

// EncodeCursor builds an opaque token from a sort value and tiebreak id.
func EncodeCursor(value string, id uint64) string {
	b, _ := json.Marshal(Cursor{Value: value, ID: id})
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor returns nil for empty, malformed, truncated or otherwise
// adversarial tokens. Callers must treat nil exactly like "no cursor
// supplied" and serve the first page; a bad cursor is never an error.
func DecodeCursor(token string) *Cursor {
	if token == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil
	}
	if c.ID == 0 {
		return nil
	}
	return &c
}
