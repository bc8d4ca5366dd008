package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"steward/socialhub/internal/config"
	"steward/socialhub/internal/handler/middleware"
	jwtpkg "steward/socialhub/pkg/jwt"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	stateHandler *OAuthStateHandler,
	accountHandler *AccountHandler,
	brandHandler *BrandHandler,
	ingestionHandler *IngestionHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	if cors := middleware.CORS(cfg.CORS); cors != nil {
		r.Use(cors)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtManager))
	{
		api.POST("/oauth/states", stateHandler.Start)
		api.POST("/oauth/states/:token/redeem", stateHandler.Redeem)

		api.PUT("/accounts/:id", accountHandler.Upsert)
		api.GET("/accounts/:id", accountHandler.Get)

		api.GET("/content", ingestionHandler.ListContent)
	}

	// Operations that span every organization.
	admin := api.Group("")
	admin.Use(middleware.AdminAuth(cfg.Admin.Subjects))
	{
		admin.GET("/platforms/:platform/eligible-accounts", accountHandler.ListEligible)
		admin.PUT("/brands/:id", brandHandler.Save)
		admin.GET("/brands/:id", brandHandler.Get)
		admin.POST("/ingestion/:platform/runs", ingestionHandler.Run)
	}

	return r
}
