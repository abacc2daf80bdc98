package domain

import "time"

// Customer is the domain model for CRM customer records.
type Customer struct {
	ID           int64
	FirstName    string
	LastName     string
	Company      string
	City         string
	Email        string
	SupportRepID *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
