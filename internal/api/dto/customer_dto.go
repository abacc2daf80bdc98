package dto

import "github.com/spec-kit/crm-service/internal/domain"

// CustomerResponse is the wire form of a customer record.
type CustomerResponse struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Company      string `json:"company,omitempty"`
	City         string `json:"city,omitempty"`
	Email        string `json:"email,omitempty"`
	SupportRepID *int64 `json:"supportRepId,omitempty"`
}

// NewCustomerResponse maps a domain customer.
func NewCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Company:      c.Company,
		City:         c.City,
		Email:        c.Email,
		SupportRepID: c.SupportRepID,
	}
}

// NewCustomerResponses maps a slice of domain customers.
func NewCustomerResponses(customers []domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, NewCustomerResponse(c))
	}
	return out
}
