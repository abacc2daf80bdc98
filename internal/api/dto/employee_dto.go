package dto

import "github.com/spec-kit/crm-service/internal/domain"

// EmployeeResponse is the wire form of an employee record. The
// password hash never leaves the service.
type EmployeeResponse struct {
	ID        int64       `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Title     string      `json:"title"`
	Role      domain.Role `json:"role"`
}

// NewEmployeeResponse maps a domain employee.
func NewEmployeeResponse(e domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Title:     e.Title,
		Role:      e.Role(),
	}
}

// NewEmployeeResponses maps a slice of domain employees.
func NewEmployeeResponses(employees []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, NewEmployeeResponse(e))
	}
	return out
}
