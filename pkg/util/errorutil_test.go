package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"domain error passes through", NewInvalidCredentials(), "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"wrapped domain error unwraps", fmt.Errorf("login: %w", NewOtpExpired()), "OTP_EXPIRED", http.StatusBadRequest},
		{"pgx no rows maps to not found", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"unknown error maps to internal", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			de := ToDomainError(tc.err)
			require.NotNil(t, de)
			require.Equal(t, tc.wantCode, de.Code)
			require.Equal(t, tc.wantStatus, de.HTTPStatus)
		})
	}
}

func TestToDomainError_Nil(t *testing.T) {
	require.Nil(t, ToDomainError(nil))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUnavailable("revocation store", cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "revocation store unavailable")
}

func TestNewDuplicateEmail_CarriesEmail(t *testing.T) {
	de := ToDomainError(NewDuplicateEmail("u@x.com"))
	require.Equal(t, http.StatusConflict, de.HTTPStatus)
	require.Equal(t, "u@x.com", de.Details["email"])
}
