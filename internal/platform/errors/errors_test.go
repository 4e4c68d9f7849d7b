package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestCodeOf(t *testing.T) {
	t.Parallel()

	if CodeOf(Validationf("bad")) != ErrorCodeValidation {
		t.Fatal("wrong code for validation error")
	}
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown {
		t.Fatal("foreign errors default to unknown")
	}
	if CodeOf(nil) != ErrorCodeUnknown {
		t.Fatal("nil defaults to unknown")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	t.Parallel()

	cases := map[ErrorCode]int{
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeJSON:            http.StatusBadRequest,
		ErrorCodeAnonymize:       http.StatusInternalServerError,
		ErrorCodeMapping:         http.StatusInternalServerError,
		ErrorCodePanic:           http.StatusInternalServerError,
		ErrorCodeUnknown:         http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatusCode(code); got != want {
			t.Errorf("code %d -> %d want %d", code, got, want)
		}
	}
}

func TestWrapAndRoot(t *testing.T) {
	t.Parallel()

	cause := stderrs.New("disk full")
	err := Wrapf(cause, ErrorCodeJSON, "encode failed")
	if !stderrs.Is(err, cause) {
		t.Fatal("wrapped cause must satisfy errors.Is")
	}
	if Root(err) != cause {
		t.Fatalf("Root=%v", Root(err))
	}
	if CodeOf(err) != ErrorCodeJSON {
		t.Fatalf("code %v", CodeOf(err))
	}
	if err.Error() != "encode failed: disk full" {
		t.Fatalf("message %q", err.Error())
	}
}

func TestWrapIf(t *testing.T) {
	t.Parallel()

	if WrapIf(nil, ErrorCodeJSON, "x") != nil {
		t.Fatal("nil in, nil out")
	}
	if WrapIf(stderrs.New("e"), ErrorCodeJSON, "x") == nil {
		t.Fatal("non-nil must wrap")
	}
}

func TestWithFieldAndOp(t *testing.T) {
	t.Parallel()

	base := Validationf("missing")
	withField := WithField(base, "email")
	e, ok := As(withField)
	if !ok || e.Field() != "email" {
		t.Fatalf("field not attached: %+v", e)
	}
	// copy-on-write: the base error is untouched
	b, _ := As(base)
	if b.Field() != "" {
		t.Fatal("base error mutated")
	}

	withOp := WithOp(base, "parse")
	o, _ := As(withOp)
	if o.Op() != "parse" {
		t.Fatalf("op not attached: %+v", o)
	}

	// foreign errors pass through unchanged
	foreign := stderrs.New("x")
	if WithField(foreign, "f") != foreign {
		t.Fatal("foreign error should pass through")
	}
}

func TestWireFrom(t *testing.T) {
	t.Parallel()

	w := WireFrom(WithField(Validationf("bad email"), "email"))
	if w.Code != ErrorCodeValidation || w.Message != "bad email" || w.Field != "email" {
		t.Fatalf("wire %+v", w)
	}

	w = WireFrom(stderrs.New("plain"))
	if w.Code != ErrorCodeUnknown || w.Message != "plain" {
		t.Fatalf("foreign wire %+v", w)
	}

	if WireFrom(nil) != (Wire{}) {
		t.Fatal("nil should yield zero wire")
	}
}

func TestHTTP(t *testing.T) {
	t.Parallel()

	status, w := HTTP(NotFoundf("gone"))
	if status != http.StatusNotFound || w.Message != "gone" {
		t.Fatalf("status %d wire %+v", status, w)
	}
	status, w = HTTP(nil)
	if status != http.StatusOK || w != (Wire{}) {
		t.Fatalf("nil: %d %+v", status, w)
	}
}

func TestIsCode(t *testing.T) {
	t.Parallel()

	if !IsCode(Mappingf("x"), ErrorCodeMapping) {
		t.Fatal("IsCode should match")
	}
	if IsCode(Mappingf("x"), ErrorCodeJSON) {
		t.Fatal("IsCode should not match")
	}
}
