package api

import (
	"net/http"

	reqdto "booking-orchestrator/internal/handler/dto/request"
	resdto "booking-orchestrator/internal/handler/dto/response"
	"booking-orchestrator/internal/handler/httperr"
	"booking-orchestrator/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkout commands.CheckoutCommands
}

func NewCheckoutHandler(checkout commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// @Summary Check out cart
// @Description Charge the held cart items, book each with its provider and pay the business share out
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "UUID that makes retries replay the first result"
// @Param request body reqdto.CheckoutRequest false "Customer profile for provider bookings"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	key := uuid.Nil
	if raw := c.GetHeader(idempotencyHeader); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid idempotency key format", nil)
			return
		}
		key = parsed
	}

	var req reqdto.CheckoutRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	profile, err := req.Profile.ToDomain()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	result, err := h.checkout.Checkout(c.Request.Context(), commands.CheckoutInput{
		CustomerID:      p.CustomerID,
		CustomerAccount: p.Account,
		Profile:         profile,
		IdempotencyKey:  key,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if result.Replayed {
		c.Header("Idempotent-Replayed", "true")
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}
