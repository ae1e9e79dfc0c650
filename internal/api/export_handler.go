package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenant-items-api/internal/api/dto"
	"github.com/kingrain94/tenant-items-api/internal/utils"
)

type ExportService interface {
	Request(ctx context.Context, requestedBy int64) (string, error)
}

type ExportHandler struct {
	*BaseHandler
	service ExportService
}

func NewExportHandler(service ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// RequestExport Schedule a snapshot of the tenant's items
// @Summary Export items
// @Description Queues a JSON snapshot of the tenant's items for upload to object storage
// @Tags    items
// @Produce json
// @Security BearerAuth
// @Success 202 {object} dto.Envelope{detail=dto.ExportResponse}
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /item-export [post]
func (h *ExportHandler) RequestExport(c *gin.Context) {
	ctx := h.RequestCtx(c)

	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		writeError(c, err, detailNotFound)
		return
	}

	exportID, err := h.service.Request(ctx, userID)
	if err != nil {
		writeError(c, err, detailNotFound)
		return
	}

	c.JSON(http.StatusAccepted, dto.Envelope{Code: http.StatusAccepted, Detail: dto.ExportResponse{ExportID: exportID}})
}
