package codec

import (
	"fmt"
	"mime"
	"strings"
)

// MediaType is a parsed media type: a type/subtype pair plus optional
// parameters. The zero value means "unspecified".
type MediaType struct {
	Type    string
	Subtype string
	Params  map[string]string
}

// Well-known media types.
var (
	Wildcard    = MediaType{Type: "*", Subtype: "*"}
	OctetStream = MediaType{Type: "application", Subtype: "octet-stream"}
	TextPlain   = MediaType{Type: "text", Subtype: "plain"}
	JSON        = MediaType{Type: "application", Subtype: "json"}
	NDJSON      = MediaType{Type: "application", Subtype: "x-ndjson"}
	StreamJSON  = MediaType{Type: "application", Subtype: "stream+json"}
	EventStream = MediaType{Type: "text", Subtype: "event-stream"}
)

// Parse parses a media type string such as "text/plain; charset=utf-8".
func Parse(s string) (MediaType, error) {
	full, params, err := mime.ParseMediaType(s)
	if err != nil {
		return MediaType{}, fmt.Errorf("codec: invalid media type %q: %w", s, err)
	}
	typ, sub, ok := strings.Cut(full, "/")
	if !ok || typ == "" || sub == "" {
		return MediaType{}, fmt.Errorf("codec: media type %q missing subtype", s)
	}
	if len(params) == 0 {
		params = nil
	}
	return MediaType{Type: typ, Subtype: sub, Params: params}, nil
}

// String renders the media type, including parameters, in header form.
func (m MediaType) String() string {
	if m.IsZero() {
		return ""
	}
	full := m.Type + "/" + m.Subtype
	if len(m.Params) == 0 {
		return full
	}
	return mime.FormatMediaType(full, m.Params)
}

// IsZero reports whether the media type is unspecified.
func (m MediaType) IsZero() bool {
	return m.Type == "" && m.Subtype == ""
}

// Matches reports whether two media types are compatible, honoring wildcards
// on either side. Parameters are ignored. A zero media type matches nothing;
// callers decide what "unspecified" means before comparing.
func (m MediaType) Matches(other MediaType) bool {
	if m.IsZero() || other.IsZero() {
		return false
	}
	return matchPart(m.Type, other.Type) && matchPart(m.Subtype, other.Subtype)
}

func matchPart(a, b string) bool {
	return a == "*" || b == "*" || strings.EqualFold(a, b)
}

// hasJSONSuffix reports media types of the application/*+json family.
func hasJSONSuffix(m MediaType) bool {
	return strings.HasSuffix(strings.ToLower(m.Subtype), "+json")
}
