package protocol

import "testing"

func TestNewError(t *testing.T) {
	e := NewError(ErrProtoBadRequest, "malformed json")
	if e.Type != TypeError || e.ProtocolVersion != Version {
		t.Fatalf("frame header: %+v", e)
	}
	if e.Code != ErrProtoBadRequest || e.Message != "malformed json" {
		t.Fatalf("got %+v", e)
	}
	for _, c := range []string{ErrBadRequest, ErrNoResource, ErrInvalidTarget, ErrRateLimit, ErrBlocked, ErrInternal} {
		if got := NewError(c, "x").Code; got != c {
			t.Fatalf("code %s rewritten to %s", c, got)
		}
	}
}

func TestNewError_UnknownCodeBecomesInternal(t *testing.T) {
	e := NewError("E_NOT_DEFINED", "boom")
	if e.Code != ErrInternal || e.Message != "E_NOT_DEFINED: boom" {
		t.Fatalf("got %+v", e)
	}
}
