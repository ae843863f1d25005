//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/handler/api"
	resdto "booking-orchestrator/internal/handler/dto/response"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/commands"
	"booking-orchestrator/internal/usecase/queries"
	"booking-orchestrator/tests/common/builder"
	"booking-orchestrator/tests/common/httptest"
	"booking-orchestrator/tests/common/testutil"
	commandsmock "booking-orchestrator/tests/mock/commands"
	queriesmock "booking-orchestrator/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockCtrl  *gomock.Controller
	mockCmds  *commandsmock.MockCartCommands
	mockHolds *commandsmock.MockHoldCommands
	mockQuery *queriesmock.MockCartQueries
	handler   *api.CartHandler
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.mockHolds = commandsmock.NewMockHoldCommands(s.mockCtrl)
	s.mockQuery = queriesmock.NewMockCartQueries(s.mockCtrl)
	s.handler = api.NewCartHandler(s.mockCmds, s.mockHolds, s.mockQuery)

	s.router.GET("/api/cart", fakeAuth, s.handler.Get)
	s.router.POST("/api/cart/items", fakeAuth, s.handler.AddItem)
	s.router.DELETE("/api/cart/items/:id", fakeAuth, s.handler.RemoveItem)
	s.router.POST("/api/cart/holds", fakeAuth, s.handler.PlaceHolds)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func (s *CartHandlerTestSuite) TestGet() {
	holdID := "H-1"
	view := &queries.CartView{
		CustomerID: testCustomer.CustomerID,
		Items: []*queries.CartItemView{{
			ID:        uuid.New(),
			ProductID: "room-101",
			Amount:    decimal.NewFromInt(200),
			Quantity:  1,
			HoldID:    &holdID,
			Bookable:  true,
		}},
		Total:         decimal.NewFromInt(200),
		BookableTotal: decimal.NewFromInt(200),
	}

	s.Run("success: returns the cart of the caller", func() {
		s.mockQuery.EXPECT().Get(gomock.Any(), testCustomer.CustomerID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/cart", nil, customerToken)

		var body resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Items, 1)
		s.Equal("room-101", body.Items[0].ProductID)
		s.Equal(&holdID, body.Items[0].HoldID)
		s.True(body.Items[0].Bookable)
		s.True(body.BookableTotal.Equal(decimal.NewFromInt(200)))
	})

	s.Run("error: 401 Unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/cart", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 500 on unexpected failure", func() {
		s.mockQuery.EXPECT().Get(gomock.Any(), testCustomer.CustomerID).Return(nil, errors.New("connection reset"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/cart", nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

func (s *CartHandlerTestSuite) TestAddItem() {
	url := "/api/cart/items"
	reqBody := builder.NewCartItemBuilder().BuildAddRequestDTO()
	newID := uuid.New()

	s.Run("success: returns 201 Created with the new item id", func() {
		s.mockCmds.EXPECT().AddItem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.AddItemInput) (uuid.UUID, error) {
				s.Equal(testCustomer.CustomerID, in.CustomerID)
				s.Equal(reqBody.ServiceID, in.ServiceID)
				s.IsType(cart.HotelPayload{}, in.Payload)
				s.True(in.UnitPrice.Equal(decimal.NewFromInt(200)))
				return newID, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)

		var body resdto.CartItemCreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(newID, body.ID)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/cart/items/" + newID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: serviceId", mutate: testutil.Field("serviceId", nil)},
			{name: "missing field: productId", mutate: testutil.Field("productId", nil)},
			{name: "missing field: payload", mutate: testutil.Field("payload", nil)},
			{name: "unknown capability", mutate: testutil.Field("capability", "spaceship")},
			{name: "currency must be three letters", mutate: testutil.Field("currency", "EURO")},
			{name: "negative unit price", mutate: testutil.Field("unitPrice", "-5")},
			{name: "payload of the wrong shape", mutate: testutil.Field("payload", []any{"not", "an", "object"})},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), customerToken)
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
			{"unknown service", commands.ErrServiceNotFound, http.StatusNotFound, "Service not found"},
			{"inactive service", commands.ErrServiceInactive, http.StatusConflict, "Service is not active"},
			{"provider says unavailable", commands.ErrItemUnavailable, http.StatusConflict, "Item is not available"},
			{"payload rejected by the domain", errs.Mark(errs.New("flight requires at least one passenger"), cart.ErrInvalidItem), http.StatusBadRequest, "Invalid cart item"},
			{"database failure", errs.Mark(errs.New("insert"), commands.ErrDatabaseOperationFailed), http.StatusInternalServerError, "Internal error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCmds.EXPECT().AddItem(gomock.Any(), gomock.Any()).Return(uuid.Nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *CartHandlerTestSuite) TestRemoveItem() {
	itemID := uuid.New()
	url := "/api/cart/items/" + itemID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCmds.EXPECT().RemoveItem(gomock.Any(), testCustomer.CustomerID, itemID).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, customerToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/cart/items/not-a-uuid", nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for an item outside the cart", func() {
		s.mockCmds.EXPECT().RemoveItem(gomock.Any(), testCustomer.CustomerID, itemID).Return(commands.ErrCartItemNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Cart item not found")
	})
}

func (s *CartHandlerTestSuite) TestPlaceHolds() {
	url := "/api/cart/holds"
	itemID := uuid.New()
	result := &commands.HoldBatchResult{
		Items: []commands.ItemHoldResult{
			{ItemID: itemID, Status: commands.HoldPlaced, HoldID: "H-1", Registration: commands.StepSuccess},
			{ItemID: uuid.New(), Status: commands.ItemUnavailable, Reason: "sold out", Registration: commands.StepSkipped},
		},
		Placed:  1,
		Removed: 1,
	}

	s.Run("success: empty body places holds with defaults", func() {
		s.mockHolds.EXPECT().PlaceHolds(gomock.Any(), testCustomer.CustomerID).Return(result, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, customerToken)

		var body resdto.HoldBatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(1, body.Placed)
		s.Equal(1, body.Removed)
		s.Require().Len(body.Items, 2)
		s.Equal("placed", body.Items[0].Status)
		s.Equal("success", body.Items[0].Registration)
		s.Equal("unavailable", body.Items[1].Status)
		s.Equal("skipped", body.Items[1].Registration)
	})

	s.Run("success: hold length and profile become options", func() {
		reqBody := map[string]any{
			"holdSeconds": 120,
			"profile": map[string]any{
				"firstName":      "Ada",
				"lastName":       "Lovelace",
				"email":          "ada@example.com",
				"documentType":   "passport",
				"documentNumber": "P123",
			},
		}
		s.mockHolds.EXPECT().PlaceHolds(gomock.Any(), testCustomer.CustomerID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, opts ...commands.HoldOption) (*commands.HoldBatchResult, error) {
				s.Len(opts, 2)
				return result, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on invalid options", func() {
		cases := []struct {
			name string
			body map[string]any
		}{
			{name: "zero hold length", body: map[string]any{"holdSeconds": 0}},
			{name: "hold longer than an hour", body: map[string]any{"holdSeconds": 7200}},
			{name: "profile without email", body: map[string]any{"profile": map[string]any{"firstName": "Ada", "lastName": "Lovelace", "documentNumber": "P1"}}},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, tc.body, customerToken)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}
