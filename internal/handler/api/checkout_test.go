//go:build unit

package api_test

import (
	"context"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"

	"booking-orchestrator/internal/handler/api"
	reqdto "booking-orchestrator/internal/handler/dto/request"
	resdto "booking-orchestrator/internal/handler/dto/response"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/commands"
	"booking-orchestrator/tests/common/httptest"
	"booking-orchestrator/tests/common/testutil"
	commandsmock "booking-orchestrator/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCheckout *commandsmock.MockCheckoutCommands
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCheckout = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.router.POST("/api/checkout", fakeAuth, api.NewCheckoutHandler(s.mockCheckout).Checkout)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func (s *CheckoutHandlerTestSuite) post(body any, key string) *nethttptest.ResponseRecorder {
	var headers map[string]string
	if key != "" {
		headers = map[string]string{"Idempotency-Key": key}
	}
	return httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/checkout", body, headers, customerToken)
}

func (s *CheckoutHandlerTestSuite) TestCheckout() {
	reservationID := uuid.New()
	deferred := uuid.New()
	result := &commands.CheckoutResult{
		PurchaseID:   uuid.New(),
		Total:        decimal.NewFromInt(200),
		Success:      true,
		RefundAmount: decimal.Zero,
		Items: []commands.ItemCheckoutResult{{
			ItemID:           uuid.New(),
			Status:           commands.ItemBooked,
			Amount:           decimal.NewFromInt(200),
			ReservationID:    &reservationID,
			ConfirmationCode: "CONF-1",
			Invoice:          commands.StepFailedNonFatal,
		}},
		Deferred: []uuid.UUID{deferred},
	}

	s.Run("success: runs the saga for the caller and renders per-item outcomes", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CheckoutInput) (*commands.CheckoutResult, error) {
				s.Equal(testCustomer.CustomerID, in.CustomerID)
				s.Equal(testCustomer.Account, in.CustomerAccount)
				s.Equal(uuid.Nil, in.IdempotencyKey)
				s.True(in.Profile.IsZero())
				return result, nil
			})

		rec := s.post(nil, "")

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(result.PurchaseID, body.PurchaseID)
		s.True(body.Success)
		s.False(body.RefundRequired)
		s.Require().Len(body.Items, 1)
		s.Equal("booked", body.Items[0].Status)
		s.Equal("failed_non_fatal", body.Items[0].Invoice)
		s.Equal(&reservationID, body.Items[0].ReservationID)
		s.Equal([]uuid.UUID{deferred}, body.Deferred)
		httptest.AssertHeadersAbsent(s.T(), rec, "Idempotent-Replayed")
	})

	s.Run("success: idempotency key is forwarded and replays are flagged", func() {
		key := uuid.New()
		replayed := *result
		replayed.Replayed = true
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CheckoutInput) (*commands.CheckoutResult, error) {
				s.Equal(key, in.IdempotencyKey)
				return &replayed, nil
			})

		rec := s.post(nil, key.String())

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("success: profile is passed to the saga", func() {
		body := map[string]any{"profile": map[string]any{
			"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "documentNumber": "P123",
		}}
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CheckoutInput) (*commands.CheckoutResult, error) {
				s.Equal("Ada Lovelace", in.Profile.FullName())
				s.Equal("ada@example.com", in.Profile.Email())
				return result, nil
			})

		rec := s.post(body, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for a malformed idempotency key", func() {
		rec := s.post(nil, "not-a-uuid")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid idempotency key format")
	})

	s.Run("error: 400 Bad Request for an invalid profile", func() {
		valid := reqdto.CheckoutRequest{Profile: &reqdto.CustomerProfileRequest{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", DocumentNumber: "P123",
		}}
		for name, mutate := range map[string]func(map[string]any){
			"malformed email":     testutil.Field("profile.email", "not-an-email"),
			"missing last name":   testutil.Field("profile.lastName", nil),
			"missing document":    testutil.Field("profile.documentNumber", nil),
			"over long firstName": testutil.Field("profile.firstName", strings.Repeat("a", 101)),
		} {
			s.Run(name, func() {
				rec := s.post(testutil.DtoMap(s.T(), valid, mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"nothing held", commands.ErrNothingToCharge, http.StatusUnprocessableEntity, "No held cart items"},
			{"debit refused", errs.Mark(errs.New("bank refused debit"), commands.ErrPaymentFailed), http.StatusPaymentRequired, "Payment failed"},
			{"concurrent checkout", commands.ErrCheckoutInProgress, http.StatusConflict, "currently being processed"},
			{"key reused", commands.ErrIdempotencyKeyReused, http.StatusConflict, "different parameters"},
			{"database failure", errs.Mark(errs.New("insert purchase"), commands.ErrDatabaseOperationFailed), http.StatusInternalServerError, "Internal error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, tc.err)

				rec := s.post(nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: 401 Unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/checkout", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
