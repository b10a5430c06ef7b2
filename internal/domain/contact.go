package domain

import "time"

// Contact is a counterparty record: the customer on a receivable, the
// supplier on a payable. Entries reference contacts with restrict-on-delete
// semantics.
type Contact struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks contact fields.
func (c *Contact) Validate() error {
	if c.Name == "" {
		return ErrInvalidName
	}
	return ValidateEmail(c.Email)
}
