package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/crm-service/internal/auth"
	"github.com/spec-kit/crm-service/internal/config"
	"github.com/spec-kit/crm-service/internal/domain"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

// fakeEmployeeRepo is an in-memory stand-in for the employee directory.
type fakeEmployeeRepo struct {
	byEmail         map[string]*domain.Employee
	passwordUpdates int
}

func newFakeEmployeeRepo(employees ...*domain.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{byEmail: make(map[string]*domain.Employee)}
	for _, e := range employees {
		repo.byEmail[e.Email] = e
	}
	return repo
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	for _, e := range r.byEmail {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	e, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEmployeeRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	r.passwordUpdates++
	for _, e := range r.byEmail {
		if e.ID == id {
			e.PasswordHash = passwordHash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, e := range r.byEmail {
		out = append(out, *e)
	}
	return out, nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		TokenTTLMinutes: 5,
		BcryptCost:      bcrypt.MinCost,
		DefaultPassword: "Jo5hu4!",
	}
}

func newTestService(t *testing.T, repo *fakeEmployeeRepo) *AuthService {
	t.Helper()
	key, err := auth.NewSigningKey()
	require.NoError(t, err)
	return NewAuthService(testAuthConfig(), AuthDependencies{
		EmployeeRepo: repo,
		TokenManager: auth.NewTokenManager(key, 5*time.Minute),
	})
}

func domainCode(t *testing.T, err error) (string, int) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	return domainErr.Code, domainErr.HTTPStatus
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeEmployeeRepo(&domain.Employee{
		ID: 1, Email: "a@b.com", Title: "Sales Manager",
		PasswordHash: mustHash(t, "secret"),
	})
	svc := newTestService(t, repo)

	result, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, domain.RoleManager, result.Role)
	require.False(t, result.RequiresPasswordChange)

	claims, err := svc.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", claims.Subject)
	require.Equal(t, domain.RoleManager, claims.Role)
}

func TestLogin_UniformFailure(t *testing.T) {
	repo := newFakeEmployeeRepo(&domain.Employee{
		ID: 1, Email: "a@b.com", Title: "Support Agent",
		PasswordHash: mustHash(t, "secret"),
	})
	svc := newTestService(t, repo)

	_, wrongPassword := svc.Login(context.Background(), "a@b.com", "wrong")
	_, unknownUser := svc.Login(context.Background(), "nobody@b.com", "secret")

	for _, err := range []error{wrongPassword, unknownUser} {
		code, status := domainCode(t, err)
		require.Equal(t, apperrors.CodeInvalidCredential, code)
		require.Equal(t, 401, status)
	}

	// The client-facing message must not reveal which case occurred.
	var e1, e2 *apperrors.DomainError
	require.True(t, errors.As(wrongPassword, &e1))
	require.True(t, errors.As(unknownUser, &e2))
	require.Equal(t, e1.Message, e2.Message)
}

func TestLogin_DefaultPasswordSignal(t *testing.T) {
	repo := newFakeEmployeeRepo(&domain.Employee{
		ID: 1, Email: "new@b.com", Title: "Support Agent",
		PasswordHash: mustHash(t, "Jo5hu4!"),
	})
	svc := newTestService(t, repo)

	result, err := svc.Login(context.Background(), "new@b.com", "Jo5hu4!")
	require.NoError(t, err)
	require.True(t, result.RequiresPasswordChange)
	require.Equal(t, domain.RoleEmployee, result.Role)
}

func TestRefresh_ManagerGetsLaterExpiry(t *testing.T) {
	repo := newFakeEmployeeRepo(&domain.Employee{
		ID: 1, Email: "boss@b.com", Title: "General Manager",
		PasswordHash: mustHash(t, "secret"),
	})
	svc := newTestService(t, repo)

	original, err := svc.Login(context.Background(), "boss@b.com", "secret")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	refreshed, err := svc.Refresh(context.Background(), "Bearer "+original.Token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, refreshed.Role)
	require.True(t, refreshed.ExpiresAt.After(original.ExpiresAt),
		"refreshed expiry %v must be strictly later than %v", refreshed.ExpiresAt, original.ExpiresAt)
}

func TestRefresh_NonManagerForbidden(t *testing.T) {
	repo := newFakeEmployeeRepo(&domain.Employee{
		ID: 1, Email: "rep@b.com", Title: "Support Agent",
		PasswordHash: mustHash(t, "secret"),
	})
	svc := newTestService(t, repo)

	result, err := svc.Login(context.Background(), "rep@b.com", "secret")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), "Bearer "+result.Token)
	code, status := domainCode(t, err)
	require.Equal(t, apperrors.CodeForbidden, code)
	require.Equal(t, 403, status)
}

func TestRefresh_HeaderAndTokenFailures(t *testing.T) {
	repo := newFakeEmployeeRepo(&domain.Employee{
		ID: 1, Email: "boss@b.com", Title: "General Manager",
		PasswordHash: mustHash(t, "secret"),
	})
	svc := newTestService(t, repo)

	otherKey, err := auth.NewSigningKey()
	require.NoError(t, err)
	foreign, _, err := auth.NewTokenManager(otherKey, time.Minute).Issue("boss@b.com", domain.RoleManager)
	require.NoError(t, err)

	vanishedToken, _, err := svc.TokenManager().Issue("gone@b.com", domain.RoleManager)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantCode   string
		wantStatus int
	}{
		{"missing header", "", apperrors.CodeValidationFailed, 400},
		{"malformed header", "secret-token", apperrors.CodeValidationFailed, 400},
		{"foreign signature", "Bearer " + foreign, apperrors.CodeTokenInvalid, 401},
		{"subject vanished", "Bearer " + vanishedToken, apperrors.CodeUnauthorized, 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Refresh(context.Background(), tt.header)
			code, status := domainCode(t, err)
			require.Equal(t, tt.wantCode, code)
			require.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestRefresh_ExpiredToken(t *testing.T) {
	repo := newFakeEmployeeRepo(&domain.Employee{
		ID: 1, Email: "boss@b.com", Title: "General Manager",
		PasswordHash: mustHash(t, "secret"),
	})

	key, err := auth.NewSigningKey()
	require.NoError(t, err)
	tm := auth.NewTokenManager(key, 5*time.Minute)
	svc := NewAuthService(testAuthConfig(), AuthDependencies{EmployeeRepo: repo, TokenManager: tm})

	// Issue an already-expired token under the same key.
	expired, _, err := auth.NewTokenManager(key, time.Nanosecond).Issue("boss@b.com", domain.RoleManager)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	_, err = svc.Refresh(context.Background(), "Bearer "+expired)
	code, status := domainCode(t, err)
	require.Equal(t, apperrors.CodeTokenExpired, code)
	require.Equal(t, 401, status)
}

func TestChangePassword(t *testing.T) {
	identity := &domain.Identity{Subject: "rep@b.com", Role: domain.RoleEmployee}

	tests := []struct {
		name        string
		subject     *domain.Identity
		oldPassword string
		newPassword string
		wantCode    string
		wantStatus  int
	}{
		{"record vanished", &domain.Identity{Subject: "gone@b.com"}, "Jo5hu4!", "Abcdef1!", apperrors.CodeNotFound, 404},
		{"wrong old password", identity, "nope", "Abcdef1!", apperrors.CodeInvalidCredential, 400},
		{"reused password", identity, "Jo5hu4!", "Jo5hu4!", apperrors.CodePasswordReused, 400},
		{"weak password", identity, "Jo5hu4!", "abc", apperrors.CodeWeakPassword, 400},
		{"no special char", identity, "Jo5hu4!", "Abcdefg1", apperrors.CodeWeakPassword, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeEmployeeRepo(&domain.Employee{
				ID: 1, Email: "rep@b.com", Title: "Support Agent",
				PasswordHash: mustHash(t, "Jo5hu4!"),
			})
			svc := newTestService(t, repo)

			err := svc.ChangePassword(context.Background(), tt.subject, tt.oldPassword, tt.newPassword)
			code, status := domainCode(t, err)
			require.Equal(t, tt.wantCode, code)
			require.Equal(t, tt.wantStatus, status)
			require.Zero(t, repo.passwordUpdates, "no persist on a failure path")
		})
	}
}

func TestChangePassword_Success(t *testing.T) {
	repo := newFakeEmployeeRepo(&domain.Employee{
		ID: 1, Email: "rep@b.com", Title: "Support Agent",
		PasswordHash: mustHash(t, "Jo5hu4!"),
	})
	svc := newTestService(t, repo)
	identity := &domain.Identity{Subject: "rep@b.com", Role: domain.RoleEmployee}

	err := svc.ChangePassword(context.Background(), identity, "Jo5hu4!", "Abcdef1!")
	require.NoError(t, err)
	require.Equal(t, 1, repo.passwordUpdates)

	updated, err := repo.GetByEmail(context.Background(), "rep@b.com")
	require.NoError(t, err)
	require.True(t, auth.Matches("Abcdef1!", updated.PasswordHash))
	require.False(t, auth.Matches("Jo5hu4!", updated.PasswordHash))
}
