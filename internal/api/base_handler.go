package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenant-items-api/internal/utils"
)

type BaseHandler struct{}

// RequestCtx returns the request context with the gin keys set by middleware
// copied onto it under their typed context keys.
func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	for k, v := range ginCtx.Keys {
		ctx = context.WithValue(ctx, utils.ContextKey(k), v)
	}
	return ctx
}
