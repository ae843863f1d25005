package queries

import (
	"booking-orchestrator/internal/domain/customer"

	"github.com/google/uuid"
)

// Viewer is the caller of a read; operators and admins may read any customer's records
type Viewer struct {
	CustomerID uuid.UUID
	Role       customer.Role
}

func (v Viewer) CanSee(owner uuid.UUID) bool {
	if v.Role == customer.RoleOperator || v.Role == customer.RoleAdmin {
		return true
	}
	return owner == v.CustomerID
}
