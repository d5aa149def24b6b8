// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"supplylink/internal/delivery/http/middleware"
	"supplylink/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DiscoveryHandler  *handler.DiscoveryHandler
	ConnectionHandler *handler.ConnectionHandler
	DealerHandler     *handler.DealerHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	discoveryHandler  *handler.DiscoveryHandler
	connectionHandler *handler.ConnectionHandler
	dealerHandler     *handler.DealerHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		discoveryHandler:  params.DiscoveryHandler,
		connectionHandler: params.ConnectionHandler,
		dealerHandler:     params.DealerHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Unauthenticated probes
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Shopkeeper routes
	shopkeeperGroup := e.Group("/shopkeeper")
	shopkeeperGroup.Use(r.authMiddleware.Authenticate)
	shopkeeperGroup.Use(r.authMiddleware.RequireRole(middleware.RoleShopkeeper))
	{
		shopkeeperGroup.GET("/dealers/nearby", r.discoveryHandler.FindNearbyDealers)
		shopkeeperGroup.GET("/connection", r.connectionHandler.GetConnectionStatus)
		shopkeeperGroup.POST("/connections", r.connectionHandler.RequestConnection)
		shopkeeperGroup.POST("/connections/:connectionId/revoke", r.connectionHandler.RevokeConnection)
	}

	// Dealer routes
	dealerGroup := e.Group("/dealer")
	dealerGroup.Use(r.authMiddleware.Authenticate)
	dealerGroup.Use(r.authMiddleware.RequireRole(middleware.RoleDealer))
	{
		dealerGroup.GET("/connections", r.connectionHandler.ListDealerConnections)
		dealerGroup.POST("/connections/:connectionId/accept", r.connectionHandler.AcceptConnection)
		dealerGroup.POST("/connections/:connectionId/reject", r.connectionHandler.RejectConnection)
		dealerGroup.POST("/connections/:connectionId/revoke", r.connectionHandler.RevokeConnection)
		dealerGroup.PUT("/location", r.dealerHandler.UpdateLocation)
		dealerGroup.POST("/deactivate", r.dealerHandler.Deactivate)
	}
}
