package api

import (
	"net/http"

	reqdto "booking-orchestrator/internal/handler/dto/request"
	resdto "booking-orchestrator/internal/handler/dto/response"
	"booking-orchestrator/internal/handler/httperr"
	"booking-orchestrator/internal/usecase/commands"
	"booking-orchestrator/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cmds  commands.CartCommands
	holds commands.HoldCommands
	q     queries.CartQueries
}

func NewCartHandler(cmds commands.CartCommands, holds commands.HoldCommands, q queries.CartQueries) *CartHandler {
	return &CartHandler{cmds: cmds, holds: holds, q: q}
}

// @Summary Get cart
// @Description Get the current customer's cart with hold state and totals
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Failure 401 {object} map[string]string
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), p.CustomerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	out, err := resdto.FromCartView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Add cart item
// @Description Add a bookable product to the cart; verify asks the provider for availability first
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddCartItemRequest true "Cart item"
// @Success 201 {object} resdto.CartItemCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req reqdto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput(p.CustomerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	id, err := h.cmds.AddItem(c.Request.Context(), in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/cart/items/"+id.String())
	c.JSON(http.StatusCreated, resdto.CartItemCreatedResponse{ID: id})
}

// @Summary Remove cart item
// @Tags cart
// @Security BearerAuth
// @Param id path string true "Cart item ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.cmds.RemoveItem(c.Request.Context(), p.CustomerID, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Place holds
// @Description Place provider holds on every cart item that has none; unavailable items are removed
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PlaceHoldsRequest false "Hold options"
// @Success 200 {object} resdto.HoldBatchResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /cart/holds [post]
func (h *CartHandler) PlaceHolds(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req reqdto.PlaceHoldsRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	opts, err := req.Options()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	result, err := h.holds.PlaceHolds(c.Request.Context(), p.CustomerID, opts...)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHoldBatchResult(result))
}
