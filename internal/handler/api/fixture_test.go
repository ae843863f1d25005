//go:build unit

package api_test

import (
	"net/http"
	"strings"

	"booking-orchestrator/internal/domain/customer"
	"booking-orchestrator/internal/handler/middleware"
	"booking-orchestrator/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	customerToken = "customer-token"
	operatorToken = "operator-token"
)

var (
	testCustomer = usecase.Principal{
		CustomerID: uuid.MustParse("6f1c2a9e-3b7d-4d5e-9a10-2c4b6d8e0f11"),
		Role:       customer.RoleCustomer,
		Account:    1001,
	}
	testOperator = usecase.Principal{
		CustomerID: uuid.MustParse("0a9b8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"),
		Role:       customer.RoleOperator,
		Account:    9,
	}
)

// fakeAuth stands in for RequireAuth: the bearer token picks the principal
func fakeAuth(c *gin.Context) {
	switch strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ") {
	case customerToken:
		middleware.SetPrincipal(c, testCustomer)
	case operatorToken:
		middleware.SetPrincipal(c, testOperator)
	default:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
		return
	}
	c.Next()
}
