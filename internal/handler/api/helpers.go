package api

import (
	"io"
	"net/http"

	"booking-orchestrator/internal/handler/httperr"
	"booking-orchestrator/internal/handler/middleware"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase"
	"booking-orchestrator/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyHeader = "Idempotency-Key"

func requirePrincipal(c *gin.Context) (usecase.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.ErrUnauthenticated, "Unauthorized", nil)
		return usecase.Principal{}, false
	}
	return p, true
}

func viewerOf(p usecase.Principal) queries.Viewer {
	return queries.Viewer{CustomerID: p.CustomerID, Role: p.Role}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// bindOptionalJSON accepts an empty body and leaves req at its zero value
func bindOptionalJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errs.Is(err, io.EOF) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return false
	}
	return true
}
