package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeOfWrappedChain(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Wrap(CodeUpstream, "Service indisponible", cause)
	wrapped := fmt.Errorf("creating venue: %w", err)

	if CodeOf(wrapped) != CodeUpstream {
		t.Errorf("CodeOf = %s, want %s", CodeOf(wrapped), CodeUpstream)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("cause lost through wrapping")
	}
}

func TestMessageOfHidesCause(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := Wrap(CodeConflict, "Impossible de créer le compte", cause)

	if MessageOf(err) != "Impossible de créer le compte" {
		t.Errorf("MessageOf = %q", MessageOf(err))
	}
}

func TestPlainErrorDefaultsToInternal(t *testing.T) {
	err := errors.New("boom")

	if CodeOf(err) != CodeInternal {
		t.Errorf("CodeOf = %s, want %s", CodeOf(err), CodeInternal)
	}
	if MessageOf(err) != "Erreur interne du serveur" {
		t.Errorf("MessageOf = %q", MessageOf(err))
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:      http.StatusBadRequest,
		CodeUnauthenticated: http.StatusUnauthorized,
		CodeForbidden:       http.StatusForbidden,
		CodeNotFound:        http.StatusNotFound,
		CodeQuotaExceeded:   http.StatusConflict,
		CodeConflict:        http.StatusConflict,
		CodeUpstream:        http.StatusBadGateway,
		CodeInternal:        http.StatusInternalServerError,
	}

	for code, want := range cases {
		if got := HTTPStatus(code); got != want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}
