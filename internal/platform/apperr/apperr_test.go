package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{New(Validation, "bad input"), http.StatusBadRequest},
		{New(NotFound, "missing"), http.StatusNotFound},
		{New(Unauthorized, "who are you"), http.StatusUnauthorized},
		{New(Forbidden, "not yours"), http.StatusForbidden},
		{New(Conflict, "duplicate"), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("row scan failed")
	err := Wrap(NotFound, cause, "visit %s not found", "abc")

	if !errors.Is(err, cause) {
		t.Error("wrapped cause lost")
	}
	if !IsNotFound(err) {
		t.Error("kind lost through wrap")
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(New(Validation, "x")) != Validation {
		t.Error("KindOf validation mismatch")
	}
	if KindOf(errors.New("plain")) == Validation {
		t.Error("plain error classified as validation")
	}
	if !IsValidation(New(Validation, "x")) {
		t.Error("IsValidation false for validation error")
	}
}
