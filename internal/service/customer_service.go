package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

// CustomerService lists customer records scoped by the caller's role:
// managers see every customer, employees only the customers they
// support. The optional city filter applies to both.
type CustomerService struct {
	customers repository.CustomerRepository
	employees repository.EmployeeRepository
}

// NewCustomerService builds the service.
func NewCustomerService(customers repository.CustomerRepository, employees repository.EmployeeRepository) *CustomerService {
	return &CustomerService{customers: customers, employees: employees}
}

// ListForIdentity returns the customers visible to the identity.
func (s *CustomerService) ListForIdentity(ctx context.Context, identity *domain.Identity, city string) ([]domain.Customer, error) {
	employee, err := s.employees.GetByEmail(ctx, identity.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.MapError(err)
	}

	filter := repository.CustomerFilter{City: city}
	if !employee.IsManager() {
		filter.SupportRepID = &employee.ID
	}

	customers, err := s.customers.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return customers, nil
}
