//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"booking-orchestrator/internal/domain/customer"
	"booking-orchestrator/internal/handler/middleware"
	"booking-orchestrator/internal/usecase"
	"booking-orchestrator/tests/common/httptest"
	usecasemock "booking-orchestrator/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockValidator *usecasemock.MockTokenValidator
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockValidator = usecasemock.NewMockTokenValidator(s.mockCtrl)
	auth := middleware.NewAuthMiddleware(s.mockValidator)

	s.router.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		p, _ := middleware.GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"customerId": p.CustomerID, "role": p.Role, "account": p.Account})
	})
	s.router.GET("/ops", auth.RequireAuth(), auth.RequireRoleAtLeast(customer.RoleOperator), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	s.router.GET("/misconfigured", auth.RequireRoleAtLeast(customer.RoleOperator), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	principal := usecase.Principal{CustomerID: uuid.New(), Role: customer.RoleCustomer, Account: 1001}

	s.Run("success: valid token exposes the principal", func() {
		s.mockValidator.EXPECT().ValidateToken("good").Return(principal, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "good")

		var body struct {
			CustomerID uuid.UUID `json:"customerId"`
			Role       string    `json:"role"`
			Account    int64     `json:"account"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(principal.CustomerID, body.CustomerID)
		s.Equal("customer", body.Role)
		s.Equal(int64(1001), body.Account)
	})

	s.Run("error: 401 Unauthorized without a bearer token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 401 Unauthorized for a rejected token", func() {
		s.mockValidator.EXPECT().ValidateToken("expired").Return(usecase.Principal{}, errors.New("token is expired"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "expired")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRoleAtLeast() {
	cases := []struct {
		name           string
		role           customer.Role
		expectedStatus int
	}{
		{"customer is below operator", customer.RoleCustomer, http.StatusForbidden},
		{"operator passes", customer.RoleOperator, http.StatusNoContent},
		{"admin outranks operator", customer.RoleAdmin, http.StatusNoContent},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.mockValidator.EXPECT().ValidateToken("token").
				Return(usecase.Principal{CustomerID: uuid.New(), Role: tc.role}, nil)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/ops", nil, "token")
			s.Equal(tc.expectedStatus, rec.Code)
		})
	}

	s.Run("error: 500 when used without RequireAuth", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/misconfigured", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
