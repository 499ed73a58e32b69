package api

import (
	"net/http"
	"time"

	agentDelivery "dealersync-backend/internal/agent/delivery"
	inventoryDelivery "dealersync-backend/internal/inventory/delivery"
	"dealersync-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, inventoryHandler *inventoryDelivery.InventoryHandler, agentHandler *agentDelivery.AgentHandler, cfg *config.Config) {
	// Health check (no auth required)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Agent routes (bearer token protected)
	agent := r.Group("/agent")
	agent.Use(agentDelivery.BearerAuth(cfg.AgentBearerToken))
	{
		agent.POST("/reply", agentHandler.Reply)
	}

	api := r.Group("/api")
	{
		inventory := api.Group("/inventory")
		{
			inventory.GET("/search", inventoryHandler.Search)
			inventory.GET("/stats", inventoryHandler.Stats)
			inventory.GET("/vehicles/:stockNumber", inventoryHandler.GetVehicle)
			inventory.POST("/sync", inventoryHandler.Sync)
			inventory.GET("/syncs", inventoryHandler.RecentSyncs)
		}
	}
}
