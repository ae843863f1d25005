package api

import (
	"net/http"

	reqdto "booking-orchestrator/internal/handler/dto/request"
	resdto "booking-orchestrator/internal/handler/dto/response"
	"booking-orchestrator/internal/handler/httperr"
	"booking-orchestrator/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog queries.CatalogQueries
	search  queries.SearchQueries
}

func NewCatalogHandler(catalog queries.CatalogQueries, search queries.SearchQueries) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, search: search}
}

// @Summary List services
// @Description List active catalog entries, optionally filtered by capability
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param capability query string false "flight, hotel, vehicle, table or package"
// @Success 200 {array} resdto.ServiceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	views, err := h.catalog.ListServices(c.Request.Context(), c.Query("capability"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	out, err := resdto.FromServiceViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Search products
// @Description Fan out a search to every active provider of a capability
// @Tags catalog
// @Produce json
// @Param capability path string true "flight, hotel, vehicle, table or package"
// @Param location query string false "Location"
// @Param destination query string false "Destination"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param partySize query int false "Party size"
// @Param category query string false "Category"
// @Param minPrice query string false "Minimum unit price"
// @Param maxPrice query string false "Maximum unit price"
// @Success 200 {object} resdto.SearchResponse
// @Failure 400 {object} map[string]string
// @Router /search/{capability} [get]
func (h *CatalogHandler) Search(c *gin.Context) {
	var req reqdto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	filters, err := req.ToFilters()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	result, err := h.search.Search(c.Request.Context(), c.Param("capability"), filters)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	out, err := resdto.FromSearchResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, out)
}
