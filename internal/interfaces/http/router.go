// Package http wires the ledger's HTTP surface: handlers, middleware and
// route registration.
package http

import (
	"github.com/gin-gonic/gin"

	"iprights/internal/infrastructure/config"
	"iprights/internal/interfaces/http/handlers"
	"iprights/internal/interfaces/http/middleware"
	"iprights/internal/shared/logger"
)

// Router holds the engine and the handlers registered on it.
type Router struct {
	engine          *gin.Engine
	assetHandler    *handlers.AssetHandler
	transferHandler *handlers.TransferHandler
	licenseHandler  *handlers.LicenseHandler
	accessHandler   *handlers.AccessControlHandler
	eventsHandler   *handlers.EventsHandler
	authMiddleware  *middleware.AuthMiddleware
	logger          logger.Interface
}

// NewRouter creates the gin engine and registers all routes.
func NewRouter(
	cfg *config.Config,
	assetHandler *handlers.AssetHandler,
	transferHandler *handlers.TransferHandler,
	licenseHandler *handlers.LicenseHandler,
	accessHandler *handlers.AccessControlHandler,
	eventsHandler *handlers.EventsHandler,
	authMiddleware *middleware.AuthMiddleware,
	log logger.Interface,
) *Router {
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	if len(cfg.Server.AllowedOrigins) > 0 {
		engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	}

	r := &Router{
		engine:          engine,
		assetHandler:    assetHandler,
		transferHandler: transferHandler,
		licenseHandler:  licenseHandler,
		accessHandler:   accessHandler,
		eventsHandler:   eventsHandler,
		authMiddleware:  authMiddleware,
		logger:          log,
	}
	r.registerRoutes()
	return r
}

// Engine returns the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) registerRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Read-only lookups are public: anyone may inspect asset liveness,
	// license validity, role bindings and the audit trail.
	r.engine.GET("/assets/:id/status", r.assetHandler.Status)
	r.engine.GET("/licenses/:id/validity", r.licenseHandler.Validity)
	r.engine.GET("/roles/check", r.accessHandler.CheckRole)
	r.engine.GET("/events", r.eventsHandler.Replay)

	authed := r.engine.Group("")
	authed.Use(r.authMiddleware.RequireActor())
	{
		assets := authed.Group("/assets")
		{
			assets.POST("", r.assetHandler.Register)
			assets.GET("", r.assetHandler.ListOwned)
			assets.GET("/:id", r.assetHandler.Get)
			assets.POST("/:id/deactivate", r.assetHandler.Deactivate)
			assets.POST("/:id/reactivate", r.assetHandler.Reactivate)
			assets.POST("/:id/controller", r.accessHandler.ReassignController)
			assets.POST("/:id/deletion", r.accessHandler.RequestDeletion)
			assets.POST("/:id/deletion/revert", r.accessHandler.RevertDeletion)
		}

		transfers := authed.Group("/transfers")
		{
			transfers.POST("", r.transferHandler.Request)
			transfers.GET("/pending", r.transferHandler.ListPending)
			transfers.POST("/:id/accept", r.transferHandler.Accept)
			transfers.POST("/:id/cancel", r.transferHandler.Cancel)
		}

		licenses := authed.Group("/licenses")
		{
			licenses.POST("", r.licenseHandler.Create)
			licenses.GET("", r.licenseHandler.List)
			licenses.POST("/:id/terminate", r.licenseHandler.Terminate)
			licenses.POST("/:id/royalties", r.licenseHandler.PayRoyalty)
		}

		roles := authed.Group("/roles")
		{
			roles.POST("/grant", r.accessHandler.GrantRole)
			roles.POST("/revoke", r.accessHandler.RevokeRole)
		}

		authed.POST("/subjects", r.accessHandler.RegisterSubject)
		authed.POST("/terms/preview", r.licenseHandler.PreviewTerms)
	}
}
