package request

import (
	"time"

	"booking-orchestrator/internal/domain/customer"
	"booking-orchestrator/internal/usecase/commands"
)

type CustomerProfileRequest struct {
	FirstName      string     `json:"firstName" binding:"required,max=100"`
	LastName       string     `json:"lastName" binding:"required,max=100"`
	Email          string     `json:"email" binding:"required,email"`
	DocumentType   string     `json:"documentType" binding:"max=50"`
	DocumentNumber string     `json:"documentNumber" binding:"required,max=50"`
	BirthDate      *time.Time `json:"birthDate,omitempty"`
}

func (r *CustomerProfileRequest) ToDomain() (customer.Profile, error) {
	if r == nil {
		return customer.Profile{}, nil
	}
	return customer.NewProfile(r.FirstName, r.LastName, r.Email, r.DocumentType, r.DocumentNumber, r.BirthDate)
}

// PlaceHoldsRequest may be sent with an empty body
type PlaceHoldsRequest struct {
	HoldSeconds *int                    `json:"holdSeconds,omitempty" binding:"omitempty,min=1,max=3600"`
	Profile     *CustomerProfileRequest `json:"profile,omitempty"`
}

func (r PlaceHoldsRequest) Options() ([]commands.HoldOption, error) {
	var opts []commands.HoldOption
	if r.HoldSeconds != nil {
		opts = append(opts, commands.WithHoldDuration(time.Duration(*r.HoldSeconds)*time.Second))
	}
	if r.Profile != nil {
		p, err := r.Profile.ToDomain()
		if err != nil {
			return nil, err
		}
		opts = append(opts, commands.WithCustomerProfile(p))
	}
	return opts, nil
}

type CheckoutRequest struct {
	Profile *CustomerProfileRequest `json:"profile,omitempty"`
}
