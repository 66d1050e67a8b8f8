package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/license-service/internal/license"
)

func TestToDomainErrorMapsSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"no active license", license.ErrNoActiveLicense, "NO_ACTIVE_LICENSE", http.StatusNotFound},
		{"invalid extension", license.ErrInvalidExtension, "INVALID_EXTENSION", http.StatusBadRequest},
		{"invalid duration", license.ErrInvalidDuration, "INVALID_DURATION", http.StatusBadRequest},
		{"unknown kind", license.ErrUnknownKind, "UNKNOWN_LICENSE_KIND", http.StatusBadRequest},
		{"missing row", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"storage failure", errors.New("connection refused"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			domainErr := ToDomainError(tc.err)
			assert.Equal(t, tc.code, domainErr.Code)
			assert.Equal(t, tc.status, domainErr.HTTPStatus)
		})
	}
}

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	original := NewConflict("username already taken", nil)

	domainErr := ToDomainError(original)

	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
}

func TestToDomainErrorUnwrapsWrappedSentinels(t *testing.T) {
	wrapped := errors.Join(errors.New("extend"), license.ErrNoActiveLicense)

	domainErr := ToDomainError(wrapped)

	assert.Equal(t, "NO_ACTIVE_LICENSE", domainErr.Code)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("pool exhausted")
	err := NewInternalError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "internal server error")
}
