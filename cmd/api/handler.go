package api

import (
	agentDelivery "dealersync-backend/internal/agent/delivery"
	agentUsecase "dealersync-backend/internal/agent/usecase"
	inventoryDelivery "dealersync-backend/internal/inventory/delivery"
	inventoryUsecasePkg "dealersync-backend/internal/inventory/usecase"
	"dealersync-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	inventoryHandler *inventoryDelivery.InventoryHandler
	agentHandler     *agentDelivery.AgentHandler
	config           *config.Config
}

func NewHandler(inventoryUc inventoryUsecasePkg.InventoryUsecase, replyUc agentUsecase.ReplyUsecase, cfg *config.Config) *Handler {
	return &Handler{
		inventoryHandler: inventoryDelivery.NewInventoryHandler(inventoryUc),
		agentHandler:     agentDelivery.NewAgentHandler(replyUc),
		config:           cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.inventoryHandler, h.agentHandler, h.config)

	return r.Run(addr)
}
