package domain

import "time"

// PaymentTerm is a payment-conditions record referenced by settlements,
// with restrict-on-delete semantics while in use.
type PaymentTerm struct {
	ID               string
	Name             string
	InstallmentCount int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks payment term fields.
func (p *PaymentTerm) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.InstallmentCount < 1 {
		return ErrInvalidInstallment
	}
	return nil
}
