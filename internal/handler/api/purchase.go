package api

import (
	"net/http"

	reqdto "booking-orchestrator/internal/handler/dto/request"
	resdto "booking-orchestrator/internal/handler/dto/response"
	"booking-orchestrator/internal/handler/httperr"
	"booking-orchestrator/internal/usecase"
	"booking-orchestrator/internal/usecase/commands"
	"booking-orchestrator/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PurchaseHandler struct {
	cmds commands.PurchaseCommands
	q    queries.PurchaseQueries
}

func NewPurchaseHandler(cmds commands.PurchaseCommands, q queries.PurchaseQueries) *PurchaseHandler {
	return &PurchaseHandler{cmds: cmds, q: q}
}

// @Summary Get purchase
// @Description Get a purchase with its linked reservations
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase ID"
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /purchases/{id} [get]
func (h *PurchaseHandler) Get(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.render(c, p, id)
}

// @Summary Set purchase invoice
// @Description Store the invoice URL of a purchase (operator role)
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase ID"
// @Param request body reqdto.SetInvoiceURLRequest true "Invoice URL"
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /purchases/{id}/invoice [put]
func (h *PurchaseHandler) SetInvoiceURL(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.SetInvoiceURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.SetInvoiceURL(c.Request.Context(), id, req.InvoiceURL); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.render(c, p, id)
}

func (h *PurchaseHandler) render(c *gin.Context, p usecase.Principal, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), viewerOf(p), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	out, err := resdto.FromPurchaseView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, out)
}
