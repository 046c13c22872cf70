package codec

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/streamhttp/stream"
)

func TestTextCodec_DecodeAggregatesChunks(t *testing.T) {
	got := decodeAll(t, NewTextCodec(), stringType, TextPlain,
		[]byte("Hello "), []byte("stream "), []byte("world!"))
	if len(got) != 1 {
		t.Fatalf("expected 1 element, got %d", len(got))
	}
	if got[0] != "Hello stream world!" {
		t.Errorf("got %q", got[0])
	}
}

func TestTextCodec_DecodeEmptyBody(t *testing.T) {
	got := decodeAll(t, NewTextCodec(), stringType, TextPlain)
	if len(got) != 0 {
		t.Errorf("expected zero elements for an empty body, got %v", got)
	}
	got = decodeAll(t, NewTextCodec(), stringType, TextPlain, []byte{}, []byte{})
	if len(got) != 0 {
		t.Errorf("expected zero elements for zero total bytes, got %v", got)
	}
}

func TestTextCodec_DecodeError(t *testing.T) {
	wantErr := errors.New("read failed")
	body := stream.Concat(stream.Of([]byte("partial")), stream.Fail[[]byte](wantErr))
	s := NewTextCodec().Decode(body, stringType, TextPlain, DefaultHints())
	defer s.Close()
	_, _, err := s.Next(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want %v", err, wantErr)
	}
}

func TestTextCodec_Encode(t *testing.T) {
	chunks, err := stream.Collect(context.Background(),
		NewTextCodec().Encode(stream.Of[any]("plain body"), stringType, TextPlain))
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 || string(chunks[0]) != "plain body" {
		t.Errorf("got %v", chunks)
	}
}

func TestTextCodec_MediaTypes(t *testing.T) {
	c := NewTextCodec()
	hints := DefaultHints()
	if !c.CanDecode(stringType, TextPlain, hints) {
		t.Error("rejected text/plain")
	}
	if !c.CanDecode(stringType, MediaType{Type: "text", Subtype: "html"}, hints) {
		t.Error("rejected text/html")
	}
	if !c.CanDecode(stringType, MediaType{}, hints) {
		t.Error("rejected unspecified media type")
	}
	if c.CanDecode(stringType, JSON, hints) {
		t.Error("claimed application/json")
	}
	if c.CanDecode(sampleType, TextPlain, hints) {
		t.Error("claimed a struct target")
	}
}

func TestBytesCodec_PassThrough(t *testing.T) {
	got := decodeAll(t, NewBytesCodec(), bytesType, OctetStream, []byte{1, 2}, []byte{3})
	if len(got) != 2 {
		t.Fatalf("expected chunk pass-through, got %d elements", len(got))
	}
	if b := got[0].([]byte); len(b) != 2 || b[0] != 1 {
		t.Errorf("got %v", got[0])
	}
}

func TestBytesCodec_AnyMediaType(t *testing.T) {
	c := NewBytesCodec()
	for _, mt := range []MediaType{OctetStream, JSON, TextPlain, EventStream, {}} {
		if !c.CanDecode(bytesType, mt, DefaultHints()) {
			t.Errorf("rejected %v", mt)
		}
	}
	if c.CanDecode(stringType, OctetStream, DefaultHints()) {
		t.Error("claimed a string target")
	}
}

func TestBytesCodec_Encode(t *testing.T) {
	chunks, err := stream.Collect(context.Background(),
		NewBytesCodec().Encode(stream.Of[any]([]byte("raw")), bytesType, OctetStream))
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 || string(chunks[0]) != "raw" {
		t.Errorf("got %v", chunks)
	}
}
