package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kingrain94/tenant-items-api/internal/metrics"
	"github.com/kingrain94/tenant-items-api/internal/middleware"
	"github.com/kingrain94/tenant-items-api/pkg/logger"
)

// Limits bounds request size and request rates.
type Limits struct {
	MaxRequestSize  int64
	GlobalRateLimit int
	TenantRateLimit int
}

type Server struct {
	items      *ItemHandler
	auth       *AuthHandler
	export     *ExportHandler
	stream     *WebSocketHandler
	authMW     *middleware.AuthMiddleware
	rateLimit  *middleware.RateLimitMiddleware
	validation *middleware.ValidationMiddleware
	metrics    *metrics.Metrics
	logger     *logger.Logger
	limits     Limits
}

// NewServer wires handlers and middleware. rateLimit and subscriber may be
// nil, which disables rate limiting and the item stream.
func NewServer(
	itemService ItemService,
	authService AuthService,
	exportService ExportService,
	subscriber EventSubscriber,
	authMW *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	validation *middleware.ValidationMiddleware,
	metrics *metrics.Metrics,
	logger *logger.Logger,
	limits Limits,
) *Server {
	s := &Server{
		items:      NewItemHandler(itemService),
		auth:       NewAuthHandler(authService),
		export:     NewExportHandler(exportService),
		authMW:     authMW,
		rateLimit:  rateLimit,
		validation: validation,
		metrics:    metrics,
		logger:     logger,
		limits:     limits,
	}
	if subscriber != nil {
		s.stream = NewWebSocketHandler(subscriber, logger)
	}
	return s
}

// NewRouter builds the engine. The tenant resolver runs ahead of every route.
func (s *Server) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(s.logger), middleware.TenantResolver())
	if s.metrics != nil {
		router.Use(s.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.SetupRoutes(router.Group("/api/v1"))
	return router
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	api.Use(s.validation.SanitizeQuery())
	if s.limits.MaxRequestSize > 0 {
		api.Use(s.validation.ValidateRequestSize(s.limits.MaxRequestSize))
	}
	api.Use(s.validation.ValidateContentType("application/json"))

	if s.rateLimit != nil {
		api.Use(s.rateLimit.GlobalRateLimit(s.limits.GlobalRateLimit))
		api.Use(s.rateLimit.TenantRateLimit(s.limits.TenantRateLimit))
	}

	{
		api.POST("/login", s.auth.Login)
		api.POST("/token/refresh", s.auth.Refresh)
		api.GET("/ticket-detail", s.items.ItemDetail)

		private := api.Group("", s.authMW.JWTAuth())
		{
			private.GET("/item-list", s.items.ListItems)
			private.POST("/item-view", s.items.CreateItem)
			private.PUT("/item-view", s.items.UpdateItem)
			private.GET("/user-list", s.auth.ListUsers)
			private.POST("/item-export", s.export.RequestExport)
			if s.stream != nil {
				private.GET("/item-stream", s.stream.StreamItems)
			}
		}
	}
}
