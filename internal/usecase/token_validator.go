package usecase

import (
	"booking-orchestrator/internal/domain/customer"
	"booking-orchestrator/internal/pkg/jwt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=token_validator.go -destination=../../tests/mock/usecase/token_validator_mock.go -package=usecasemock

// Principal is the authenticated caller of an API request
type Principal struct {
	CustomerID uuid.UUID
	Role       customer.Role
	Account    int64
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Principal{}, err
	}

	role, err := customer.NewRole(claims.Role)
	if err != nil {
		return Principal{}, err
	}

	return Principal{CustomerID: claims.CustomerID, Role: role, Account: claims.Account}, nil
}
