package httperr

import (
	"net/http"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/domain/customer"
	"booking-orchestrator/internal/domain/purchase"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/commands"
	"booking-orchestrator/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthenticated = errs.New("unauthenticated")
	ErrForbidden       = errs.New("forbidden")
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	target error
	status int
	msg    string
}

// first match wins; sentinels are compared with errs.Is so marks are honoured
var mappings = []mapping{
	{commands.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
	{queries.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
	{commands.ErrPurchaseNotFound, http.StatusNotFound, "Purchase not found"},
	{commands.ErrPurchaseNotOwned, http.StatusNotFound, "Purchase not found"},
	{queries.ErrPurchaseNotFound, http.StatusNotFound, "Purchase not found"},
	{commands.ErrCartItemNotFound, http.StatusNotFound, "Cart item not found"},
	{commands.ErrServiceNotFound, http.StatusNotFound, "Service not found"},

	{commands.ErrCheckoutInProgress, http.StatusConflict, "Checkout is currently being processed"},
	{commands.ErrIdempotencyKeyReused, http.StatusConflict, "Idempotency key was used with different parameters"},
	{commands.ErrServiceInactive, http.StatusConflict, "Service is not active"},
	{commands.ErrItemUnavailable, http.StatusConflict, "Item is not available"},
	{commands.ErrCancellationUnsupported, http.StatusConflict, "Provider does not support cancellation"},

	{commands.ErrPaymentFailed, http.StatusPaymentRequired, "Payment failed"},
	{commands.ErrNothingToCharge, http.StatusUnprocessableEntity, "No held cart items to check out"},
	{commands.ErrCancellationFailed, http.StatusBadGateway, "Cancellation failed"},

	{queries.ErrUnknownCapability, http.StatusBadRequest, "Unknown capability"},
	{catalog.ErrInvalidCapability, http.StatusBadRequest, "Unknown capability"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor"},
	{purchase.ErrInvalidInvoiceURL, http.StatusBadRequest, "Invalid invoice url"},
	{cart.ErrInvalidItem, http.StatusBadRequest, "Invalid cart item"},
	{customer.ErrInvalidProfile, http.StatusBadRequest, "Invalid customer profile"},
	{customer.ErrInvalidEmail, http.StatusBadRequest, "Invalid customer profile"},
	{errs.ErrUnknownVariant, http.StatusBadRequest, "Invalid cart item"},
	{errs.ErrInvalidMoney, http.StatusBadRequest, "Invalid amount"},
	{errs.ErrDomainValidation, http.StatusBadRequest, "Invalid request"},
}

// Status resolves the HTTP status and public message of a use case error
func Status(err error) (int, string) {
	for _, m := range mappings {
		if errs.Is(err, m.target) {
			return m.status, m.msg
		}
	}
	return http.StatusInternalServerError, "Internal error"
}

// Abort maps err through the sentinel table and aborts the request
func Abort(c *gin.Context, err error) {
	status, msg := Status(err)
	AbortWithError(c, status, err, msg, nil)
}
