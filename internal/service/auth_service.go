package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/auth"
	"github.com/spec-kit/crm-service/internal/config"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

// LoginResult is the envelope returned on successful login and refresh.
type LoginResult struct {
	Token                  string
	Role                   domain.Role
	ExpiresAt              time.Time
	RequiresPasswordChange bool
}

// AuthService coordinates the login, refresh and password change flows
// over the employee directory.
type AuthService struct {
	employees       repository.EmployeeRepository
	throttle        *repository.LoginThrottle
	dispatcher      events.Dispatcher
	tokenMgr        *auth.TokenManager
	bcryptCost      int
	defaultPassword string
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Throttle     *repository.LoginThrottle
	Dispatcher   events.Dispatcher
	TokenManager *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		employees:       deps.EmployeeRepo,
		throttle:        deps.Throttle,
		dispatcher:      deps.Dispatcher,
		tokenMgr:        deps.TokenManager,
		bcryptCost:      cfg.BcryptCost,
		defaultPassword: cfg.DefaultPassword,
	}
}

// Login authenticates an employee by email and password. Unknown
// identifiers and wrong passwords produce the same error so the caller
// cannot tell them apart; audit events record the real reason.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.throttle.Blocked(ctx, email) {
		s.auditLoginFailure(ctx, email, "too many failed attempts")
		return nil, apperrors.NewInvalidCredential()
	}

	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.throttle.RecordFailure(ctx, email)
			s.auditLoginFailure(ctx, email, "unknown identifier")
			return nil, apperrors.NewInvalidCredential()
		}
		return nil, apperrors.MapError(err)
	}

	if !auth.Matches(password, employee.PasswordHash) {
		s.throttle.RecordFailure(ctx, email)
		s.auditLoginFailure(ctx, email, "wrong password")
		return nil, apperrors.NewInvalidCredential()
	}

	s.throttle.Reset(ctx, email)

	result, err := s.issueFor(employee)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	events.Publish(ctx, s.dispatcher, events.NewEvent(events.EventLoginSucceeded, employee.Email, result.Role, nil))
	return result, nil
}

// Refresh re-issues a token from an existing bearer header. Only
// managers may refresh; the role is re-derived from the current
// directory record, not trusted from the old token's claim.
func (s *AuthService) Refresh(ctx context.Context, authHeader string) (*LoginResult, error) {
	token, ok := auth.BearerToken(authHeader)
	if !ok {
		return nil, apperrors.NewValidationError("invalid token format", nil)
	}

	subject, err := s.tokenMgr.ExtractSubject(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.NewTokenExpired()
		}
		return nil, apperrors.NewTokenInvalid("token invalid")
	}

	employee, err := s.employees.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("unable to refresh token")
		}
		return nil, apperrors.MapError(err)
	}

	if !employee.IsManager() {
		return nil, apperrors.NewForbidden("only managers can refresh tokens")
	}

	result, err := s.issueFor(employee)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	events.Publish(ctx, s.dispatcher, events.NewEvent(events.EventTokenRefreshed, employee.Email, result.Role,
		events.TokenRefreshedPayload{ExpiresAt: result.ExpiresAt}))
	return result, nil
}

// ChangePassword enforces the password lifecycle: the old password must
// match, the new one must differ from the current and satisfy the
// complexity policy. Nothing is persisted on any failure path.
func (s *AuthService) ChangePassword(ctx context.Context, identity *domain.Identity, oldPassword, newPassword string) error {
	employee, err := s.employees.GetByEmail(ctx, identity.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return apperrors.MapError(err)
	}

	if !auth.Matches(oldPassword, employee.PasswordHash) {
		return apperrors.NewOldPasswordMismatch()
	}
	if auth.Matches(newPassword, employee.PasswordHash) {
		return apperrors.NewPasswordReused()
	}
	if !auth.CheckPasswordComplexity(newPassword) {
		return apperrors.NewWeakPassword(auth.PasswordPolicyMessage)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.employees.UpdatePassword(ctx, employee.ID, hash); err != nil {
		return apperrors.MapError(err)
	}

	events.Publish(ctx, s.dispatcher, events.NewEvent(events.EventPasswordChanged, employee.Email, employee.Role(), nil))
	return nil
}

// TokenManager exposes the underlying token manager for the gate.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueFor(employee *domain.Employee) (*LoginResult, error) {
	role := employee.Role()
	token, expiresAt, err := s.tokenMgr.Issue(employee.Email, role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:                  token,
		Role:                   role,
		ExpiresAt:              expiresAt,
		RequiresPasswordChange: auth.IsDefaultPassword(s.defaultPassword, employee.PasswordHash),
	}, nil
}

func (s *AuthService) auditLoginFailure(ctx context.Context, email, reason string) {
	events.Publish(ctx, s.dispatcher, events.NewEvent(events.EventLoginFailed, email, "",
		events.LoginFailedPayload{Reason: reason}))
}
