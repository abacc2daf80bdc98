package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

// EmployeeService exposes directory reads for handlers. Role gating
// happens in the route middleware, not here.
type EmployeeService struct {
	employees repository.EmployeeRepository
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employees: employees}
}

// Profile returns the directory record behind the identity.
func (s *EmployeeService) Profile(ctx context.Context, identity *domain.Identity) (*domain.Employee, error) {
	employee, err := s.employees.GetByEmail(ctx, identity.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// List returns every employee record.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employees, nil
}
