package handlers

import (
	"github.com/gin-gonic/gin"

	"prodcat/internal/domain/reconcile"
)

// SyncHandler triggers reconciliation passes on demand.
type SyncHandler struct {
	*BaseHandler
	service *reconcile.Service
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(base *BaseHandler, service *reconcile.Service) *SyncHandler {
	return &SyncHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Sync handles GET /contentful — runs (or joins) a reconciliation pass and
// returns its summary.
func (h *SyncHandler) Sync(c *gin.Context) {
	result, err := h.service.Run(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}
