package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"passes domain errors through", NewPasswordReused(), CodePasswordReused, http.StatusBadRequest},
		{"wrapped domain error", fmt.Errorf("change password: %w", NewWeakPassword("too weak")), CodeWeakPassword, http.StatusBadRequest},
		{"maps missing rows to not found", pgx.ErrNoRows, CodeNotFound, http.StatusNotFound},
		{"unknown errors become internal", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.HTTPStatus != tt.wantStatus {
				t.Errorf("status = %d, want %d", got.HTTPStatus, tt.wantStatus)
			}
		})
	}

	if ToDomainError(nil) != nil {
		t.Error("nil error should map to nil")
	}
}

func TestTaxonomyStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"invalid credential", NewInvalidCredential(), CodeInvalidCredential, http.StatusUnauthorized},
		{"old password mismatch", NewOldPasswordMismatch(), CodeInvalidCredential, http.StatusBadRequest},
		{"not found", NewNotFound("user"), CodeNotFound, http.StatusNotFound},
		{"token invalid", NewTokenInvalid("bad"), CodeTokenInvalid, http.StatusUnauthorized},
		{"token expired", NewTokenExpired(), CodeTokenExpired, http.StatusUnauthorized},
		{"forbidden", NewForbidden("no"), CodeForbidden, http.StatusForbidden},
		{"weak password", NewWeakPassword("weak"), CodeWeakPassword, http.StatusBadRequest},
		{"password reused", NewPasswordReused(), CodePasswordReused, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var domainErr *DomainError
			if !errors.As(tt.err, &domainErr) {
				t.Fatalf("expected DomainError, got %T", tt.err)
			}
			if domainErr.Code != tt.wantCode || domainErr.HTTPStatus != tt.wantStatus {
				t.Errorf("got (%s, %d), want (%s, %d)", domainErr.Code, domainErr.HTTPStatus, tt.wantCode, tt.wantStatus)
			}
		})
	}
}
