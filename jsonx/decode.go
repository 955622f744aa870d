// Package jsonx decodes JSON-bearing database columns that may arrive as
// null, a raw JSON string, a double-encoded JSON string, or an already
// parsed object, depending on which code path wrote them.
package jsonx

import (
	"bytes"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Decode parses raw into T. On any parse failure it logs and returns
// fallback. It never panics and never returns an error; callers that need
// a guaranteed shape use the fallback as their default.
func Decode[T any](raw json.RawMessage, fallback T, log *zerolog.Logger, field string) T {
	data := Normalize(raw)
	if len(data) == 0 {
		return fallback
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		if log != nil {
			log.Warn().Err(err).Str("field", field).Msg("unparseable json column, using default")
		}
		return fallback
	}
	return out
}

// Normalize unwraps a column payload to plain JSON bytes. A column written
// as a serialized string arrives as `"{\"wifi\":true}"`; unquote it so the
// caller can unmarshal the inner document. Empty, "null" and unparseable
// payloads normalize to nil.
func Normalize(raw json.RawMessage) []byte {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	// String-encoded column: unquote and check the inner payload again,
	// some rows are double-encoded.
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil
		}
		return Normalize(json.RawMessage(inner))
	}
	return data
}

// IsObject reports whether raw normalizes to a JSON object.
func IsObject(raw json.RawMessage) bool {
	data := Normalize(raw)
	return len(data) > 0 && data[0] == '{'
}
