package customer

import "booking-orchestrator/internal/pkg/errs"

var (
	ErrInvalidRole    = errs.New("invalid role")
	ErrInvalidEmail   = errs.New("invalid email format")
	ErrInvalidProfile = errs.New("invalid customer profile")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleOperator, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
