package codec

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		typ     string
		subtype string
	}{
		{"text/plain", "text", "plain"},
		{"application/json", "application", "json"},
		{"Text/HTML", "text", "html"},
		{"application/vnd.api+json", "application", "vnd.api+json"},
	}
	for _, tt := range tests {
		mt, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if mt.Type != tt.typ || mt.Subtype != tt.subtype {
			t.Errorf("Parse(%q) = %s/%s, want %s/%s", tt.in, mt.Type, mt.Subtype, tt.typ, tt.subtype)
		}
	}
}

func TestParse_Params(t *testing.T) {
	mt, err := Parse("text/plain; charset=utf-8")
	if err != nil {
		t.Fatal(err)
	}
	if mt.Params["charset"] != "utf-8" {
		t.Errorf("charset param = %q, want utf-8", mt.Params["charset"])
	}
	if got := mt.String(); got != "text/plain; charset=utf-8" {
		t.Errorf("String() = %q", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "text", "/plain", "text/"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
}

func TestMediaType_Matches(t *testing.T) {
	tests := []struct {
		a, b MediaType
		want bool
	}{
		{TextPlain, TextPlain, true},
		{TextPlain, MediaType{Type: "text", Subtype: "*"}, true},
		{MediaType{Type: "text", Subtype: "*"}, EventStream, true},
		{TextPlain, Wildcard, true},
		{TextPlain, JSON, false},
		{JSON, NDJSON, false},
		{TextPlain, MediaType{}, false},
		{MediaType{}, MediaType{}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Matches(tt.b); got != tt.want {
			t.Errorf("%v.Matches(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Matches(tt.a); got != tt.want {
			t.Errorf("%v.Matches(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestMediaType_String(t *testing.T) {
	if got := JSON.String(); got != "application/json" {
		t.Errorf("got %q, want application/json", got)
	}
	if got := (MediaType{}).String(); got != "" {
		t.Errorf("zero value String() = %q, want empty", got)
	}
}

func TestMediaType_IsZero(t *testing.T) {
	if !(MediaType{}).IsZero() {
		t.Error("zero value should report IsZero")
	}
	if TextPlain.IsZero() {
		t.Error("text/plain should not report IsZero")
	}
}
