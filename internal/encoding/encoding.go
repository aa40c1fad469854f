// Package encoding implements the reversible transform between a
// JSON-serializable value and a string safe to embed as a URL query
// parameter. Decoding is fail-soft: malformed input yields no value,
// never an error the caller has to handle.
package encoding

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Encode serializes v to JSON and base64url-encodes the UTF-8 bytes
// without padding. The result contains no URL-reserved characters.
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode inverts Encode. The second return value is false when s is not
// valid base64url or the decoded bytes are not valid JSON; callers must
// treat that as "nothing to restore" and fall back to defaults.
func Decode(s string) (any, bool) {
	raw, ok := DecodeRaw(s)
	if !ok {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

// DecodeRaw decodes s to the raw JSON document it carries, for callers
// that re-parse the document defensively themselves. Trailing '='
// padding from generic base64url encoders is tolerated.
func DecodeRaw(s string) (json.RawMessage, bool) {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, false
	}
	if !json.Valid(data) {
		return nil, false
	}
	return json.RawMessage(data), true
}
