package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/domain"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

const identityKey = "auth_identity"

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Gate is the per-request authentication interceptor. It attaches an
// Identity for valid bearer tokens and forwards every request
// regardless of outcome; rejection belongs to the authorization policy.
type Gate struct {
	tokens *TokenManager
}

// NewGate constructs the gate.
func NewGate(tokens *TokenManager) *Gate {
	return &Gate{tokens: tokens}
}

// Handle runs once per request, before any business logic. Absent,
// malformed, tampered or expired tokens all leave the request
// anonymous.
func (g *Gate) Handle(c *fiber.Ctx) error {
	token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Next()
	}

	claims, err := g.tokens.ParseToken(token)
	if err != nil {
		return c.Next()
	}

	if _, attached := IdentityFromContext(c); !attached {
		c.Locals(identityKey, &domain.Identity{
			Subject: claims.Subject,
			Role:    claims.Role,
		})
	}
	return c.Next()
}

// IdentityFromContext retrieves the identity attached by the gate.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

// Enforce evaluates the access policy for each request and rejects
// callers that do not satisfy the matched requirement.
func Enforce(policy *Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requirement := policy.Evaluate(c.Method(), c.Path())

		switch requirement.Kind {
		case RequirePublic:
			return c.Next()
		case RequireAuthenticated:
			if _, ok := IdentityFromContext(c); !ok {
				return apperrors.NewUnauthorized("authentication required")
			}
			return c.Next()
		case RequireRole:
			identity, ok := IdentityFromContext(c)
			if !ok {
				return apperrors.NewUnauthorized("authentication required")
			}
			if identity.Role != requirement.Role {
				return apperrors.NewForbidden("insufficient role")
			}
			return c.Next()
		default:
			return apperrors.NewForbidden("access denied")
		}
	}
}

// RequireManager restricts a route to manager identities.
func RequireManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if identity.Role != domain.RoleManager {
			return apperrors.NewForbidden("manager role required")
		}
		return c.Next()
	}
}
