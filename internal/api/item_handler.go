package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenant-items-api/internal/api/dto"
	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/service"
)

type ItemService interface {
	List(ctx context.Context) ([]domain.Item, error)
	Create(ctx context.Context, name string) (*domain.Item, error)
	Update(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error)
	Detail(ctx context.Context, id int64) (*domain.Item, error)
}

type ItemHandler struct {
	*BaseHandler
	service ItemService
}

func NewItemHandler(service ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// ListItems List every item of the caller's tenant
// @Summary List items
// @Description Returns all items of the tenant resolved from the Host header, in storage order
// @Tags    items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ItemResponse
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /item-list [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.service.List(h.RequestCtx(c))
	if err != nil {
		writeError(c, err, detailNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.FromItems(items))
}

// CreateItem Create an item
// @Summary Create item
// @Tags    items
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   body body dto.CreateItemRequest true "Item"
// @Success 201 {object} dto.Envelope
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /item-view [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil {
		writeError(c, service.NewValidationError("name", "This field is required."), detailNotFound)
		return
	}

	item, err := h.service.Create(h.RequestCtx(c), *req.Name)
	if err != nil {
		writeError(c, err, detailNotFound)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope{Code: http.StatusCreated, Detail: dto.CompactItem(item)})
}

// UpdateItem Partially update an item
// @Summary Update item
// @Description Applies the supplied fields to the item named by item_id. 204 responses carry no body.
// @Tags    items
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   body body dto.UpdateItemRequest true "Item id and fields to change"
// @Success 204
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /item-view [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	// no id matches no row
	if !req.ItemID.Set {
		writeError(c, service.ErrItemNotFound, detailNotFound)
		return
	}

	item, err := h.service.Update(h.RequestCtx(c), req.ItemID.Value, domain.ItemPatch{Name: req.Name})
	if err != nil {
		writeError(c, err, detailNotFound)
		return
	}

	c.JSON(http.StatusNoContent, dto.Envelope{Code: http.StatusNoContent, Detail: dto.CompactItem(item)})
}

// ItemDetail Get one item
// @Summary Item detail
// @Description Looks an item up by id. This endpoint does not require authentication.
// @Tags    items
// @Produce json
// @Param   item_id query int true "Item ID"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /ticket-detail [get]
func (h *ItemHandler) ItemDetail(c *gin.Context) {
	id, err := dto.ParseItemID(c.Query("item_id"))
	if err != nil {
		writeError(c, err, detailTaskNotFound)
		return
	}
	if !id.Set {
		writeError(c, service.ErrItemNotFound, detailTaskNotFound)
		return
	}

	item, err := h.service.Detail(h.RequestCtx(c), id.Value)
	if err != nil {
		writeError(c, err, detailTaskNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Code: http.StatusOK, Detail: dto.FromItem(item)})
}
