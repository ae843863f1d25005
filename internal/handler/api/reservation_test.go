//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"booking-orchestrator/internal/handler/api"
	resdto "booking-orchestrator/internal/handler/dto/response"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/commands"
	"booking-orchestrator/internal/usecase/queries"
	"booking-orchestrator/tests/common/httptest"
	commandsmock "booking-orchestrator/tests/mock/commands"
	queriesmock "booking-orchestrator/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockCtrl   *gomock.Controller
	mockQuery  *queriesmock.MockReservationQueries
	mockCancel *commandsmock.MockCancellationCommands
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQuery = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.mockCancel = commandsmock.NewMockCancellationCommands(s.mockCtrl)
	h := api.NewReservationHandler(s.mockQuery, s.mockCancel)

	s.router.GET("/api/reservations", fakeAuth, h.List)
	s.router.GET("/api/reservations/:id", fakeAuth, h.Get)
	s.router.GET("/api/reservations/:id/status", fakeAuth, h.Status)
	s.router.POST("/api/reservations/:id/cancel", fakeAuth, h.Cancel)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func customerViewer() queries.Viewer {
	return queries.Viewer{CustomerID: testCustomer.CustomerID, Role: testCustomer.Role}
}

func (s *ReservationHandlerTestSuite) TestList() {
	items := []*queries.ReservationListItem{
		{ID: uuid.New(), ServiceName: "Harbor Hotel", ConfirmationCode: "CONF-1", Active: true, Amount: decimal.NewFromInt(200)},
		{ID: uuid.New(), ServiceName: "Bistro", ConfirmationCode: "CONF-2", Amount: decimal.NewFromInt(40)},
	}

	s.Run("success: first page with a next cursor", func() {
		next := &queries.Cursor{After: "djE6MTIzLWFiYw=="}
		s.mockQuery.EXPECT().ListByCustomer(gomock.Any(), testCustomer.CustomerID, (*queries.Cursor)(nil), 2).Return(items, next, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations?limit=2", nil, customerToken)

		var body resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Items, 2)
		s.Equal("CONF-1", body.Items[0].ConfirmationCode)
		s.True(body.Items[0].Active)
		s.False(body.Items[1].Active)
		s.Require().NotNil(body.NextCursor)
		s.Equal(next.After, *body.NextCursor)
	})

	s.Run("success: cursor is forwarded and the last page has none", func() {
		s.mockQuery.EXPECT().ListByCustomer(gomock.Any(), testCustomer.CustomerID, &queries.Cursor{After: "abc"}, 0).Return(items[:1], nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations?after=abc", nil, customerToken)

		var body resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Nil(body.NextCursor)
	})

	s.Run("error: 400 Bad Request for an out of range limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations?limit=1000", nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 Bad Request for a tampered cursor", func() {
		s.mockQuery.EXPECT().ListByCustomer(gomock.Any(), testCustomer.CustomerID, gomock.Any(), 0).
			Return(nil, nil, errs.Mark(errs.New("decode cursor"), queries.ErrInvalidCursor))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations?after=%25%25", nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

func (s *ReservationHandlerTestSuite) TestGet() {
	id := uuid.New()
	url := "/api/reservations/" + id.String()
	view := &queries.ReservationView{
		ID:                   id,
		CustomerID:           testCustomer.CustomerID,
		ServiceName:          "Harbor Hotel",
		ConfirmationCode:     "CONF-1",
		Active:               true,
		Amount:               decimal.NewFromInt(200),
		AmountPaidToBusiness: decimal.NewFromInt(180),
		PlatformCommission:   decimal.NewFromInt(20),
		CreatedAt:            time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC),
	}

	s.Run("success: returns the reservation with its split", func() {
		s.mockQuery.EXPECT().GetByID(gomock.Any(), customerViewer(), id).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, customerToken)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(id, body.ID)
		s.Equal("CONF-1", body.ConfirmationCode)
		s.True(body.AmountPaidToBusiness.Equal(decimal.NewFromInt(180)))
		s.True(body.PlatformCommission.Equal(decimal.NewFromInt(20)))
		s.True(view.CreatedAt.Equal(body.CreatedAt))
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations/nope", nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for someone else's reservation", func() {
		s.mockQuery.EXPECT().GetByID(gomock.Any(), customerViewer(), id).Return(nil, queries.ErrReservationNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

func (s *ReservationHandlerTestSuite) TestStatus() {
	id := uuid.New()

	s.Run("success: reports the cancelled flag", func() {
		s.mockQuery.EXPECT().IsCancelled(gomock.Any(), customerViewer(), id).
			Return(&queries.ReservationStatusView{ID: id, CustomerID: testCustomer.CustomerID, Cancelled: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations/"+id.String()+"/status", nil, customerToken)

		var body resdto.ReservationStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(id, body.ID)
		s.True(body.Cancelled)
	})
}

func (s *ReservationHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/api/reservations/" + id.String() + "/cancel"

	s.Run("success: returns the refund and the provider outcome", func() {
		s.mockCancel.EXPECT().Cancel(gomock.Any(), id, testCustomer.CustomerID).Return(&commands.CancelResult{
			ReservationID: id,
			Status:        commands.StatusCancelled,
			Provider:      commands.StepFailedNonFatal,
			Refunded:      decimal.NewFromInt(200),
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, customerToken)

		var body resdto.CancelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)
		s.Equal("failed_non_fatal", body.Provider)
		s.True(body.Refunded.Equal(decimal.NewFromInt(200)))
	})

	s.Run("success: second cancel reports already cancelled", func() {
		s.mockCancel.EXPECT().Cancel(gomock.Any(), id, testCustomer.CustomerID).Return(&commands.CancelResult{
			ReservationID: id,
			Status:        commands.StatusAlreadyCancelled,
			Refunded:      decimal.Zero,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, customerToken)

		var body resdto.CancelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("already_cancelled", body.Status)
		s.True(body.Refunded.IsZero())
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"not found", commands.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
			{"legacy provider", commands.ErrCancellationUnsupported, http.StatusConflict, "does not support cancellation"},
			{"money legs refused", errs.Mark(errs.New("refund refused"), commands.ErrCancellationFailed), http.StatusBadGateway, "Cancellation failed"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCancel.EXPECT().Cancel(gomock.Any(), id, testCustomer.CustomerID).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, customerToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
