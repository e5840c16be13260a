package pagination

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token := EncodeCursor("2025-06-01T10:00:00Z", 42)
	cur := DecodeCursor(token)
	require.NotNil(t, cur)
	assert.Equal(t, "2025-06-01T10:00:00Z", cur.Value)
	assert.Equal(t, uint64(42), cur.ID)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"not base64":   "!!!not-base64!!!",
		"not json":     base64.RawURLEncoding.EncodeToString([]byte("hello")),
		"zero id":      EncodeCursor("x", 0),
		"truncated":    EncodeCursor("2025-06-01T10:00:00Z", 42)[:5],
		"wrong shape":  base64.RawURLEncoding.EncodeToString([]byte(`["a",1]`)),
		"padded token": base64.StdEncoding.EncodeToString([]byte(`{"v":"x","id":1}`)),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, DecodeCursor(token))
		})
	}
}
