package auth

import (
	"net/http"
	"strings"

	"github.com/spec-kit/crm-service/internal/domain"
)

// RequirementKind tags the authentication state a rule demands.
type RequirementKind int

const (
	// RequirePublic allows the request with or without an identity.
	RequirePublic RequirementKind = iota
	// RequireAuthenticated demands an attached identity of any role.
	RequireAuthenticated
	// RequireRole demands an attached identity with a specific role.
	RequireRole
)

// Requirement is the tagged outcome of evaluating the policy for a request.
type Requirement struct {
	Kind RequirementKind
	Role domain.Role
}

// Public builds a requirement that admits anonymous callers.
func Public() Requirement {
	return Requirement{Kind: RequirePublic}
}

// AuthenticatedAny builds a requirement for any attached identity.
func AuthenticatedAny() Requirement {
	return Requirement{Kind: RequireAuthenticated}
}

// AuthenticatedRole builds a requirement for a specific role.
func AuthenticatedRole(role domain.Role) Requirement {
	return Requirement{Kind: RequireRole, Role: role}
}

// Rule pairs a request predicate with its requirement.
type Rule struct {
	Match       func(method, path string) bool
	Requirement Requirement
}

// Policy is an ordered rule set evaluated first-match-wins.
type Policy struct {
	rules    []Rule
	fallback Requirement
}

// NewPolicy builds a policy from ordered rules. Requests matching no
// rule fall back to the given requirement.
func NewPolicy(fallback Requirement, rules ...Rule) *Policy {
	return &Policy{rules: rules, fallback: fallback}
}

// Evaluate returns the requirement of the first matching rule.
func (p *Policy) Evaluate(method, path string) Requirement {
	for _, rule := range p.rules {
		if rule.Match(method, path) {
			return rule.Requirement
		}
	}
	return p.fallback
}

// PathPrefix matches any method on paths under the given prefix.
func PathPrefix(prefix string) func(method, path string) bool {
	return func(_, path string) bool {
		return strings.HasPrefix(path, prefix)
	}
}

// Method matches every path for the given HTTP method.
func Method(method string) func(method, path string) bool {
	return func(m, _ string) bool {
		return strings.EqualFold(m, method)
	}
}

// DefaultPolicy is the service's access table: auth entry points,
// CORS pre-flight and introspection surfaces are public, everything
// else requires an authenticated identity of any role. Role checks
// beyond this table live on the individual routes.
func DefaultPolicy() *Policy {
	return NewPolicy(
		AuthenticatedAny(),
		Rule{Match: PathPrefix("/api/auth/"), Requirement: Public()},
		Rule{Match: Method(http.MethodOptions), Requirement: Public()},
		Rule{Match: PathPrefix("/docs"), Requirement: Public()},
		Rule{Match: PathPrefix("/health"), Requirement: Public()},
	)
}
