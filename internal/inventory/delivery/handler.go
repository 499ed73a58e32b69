package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"dealersync-backend/internal/inventory/usecase"

	"github.com/gin-gonic/gin"
)

// InventoryHandler handles inventory-related HTTP requests
type InventoryHandler struct {
	inventoryUsecase usecase.InventoryUsecase
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryUsecase usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{
		inventoryUsecase: inventoryUsecase,
	}
}

// Search finds vehicles matching a free-text query
// GET /api/inventory/search?q=silv&limit=50
func (h *InventoryHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if len(q) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "query must be at least 2 characters",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	vehicles, err := h.inventoryUsecase.Search(q, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"query":    q,
		"count":    len(vehicles),
		"vehicles": vehicles,
	})
}

// Stats returns aggregate inventory counts
// GET /api/inventory/stats
func (h *InventoryHandler) Stats(c *gin.Context) {
	stats, err := h.inventoryUsecase.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

// GetVehicle returns one vehicle by its stock number
// GET /api/inventory/vehicles/:stockNumber
func (h *InventoryHandler) GetVehicle(c *gin.Context) {
	stockNumber := c.Param("stockNumber")

	vehicle, err := h.inventoryUsecase.GetByStockNumber(stockNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if vehicle == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "vehicle": vehicle})
}

// Sync runs the scrape-and-reconcile job and reports its outcome.
// Always answers with a JSON body describing what happened.
// POST /api/inventory/sync
func (h *InventoryHandler) Sync(c *gin.Context) {
	outcome, err := h.inventoryUsecase.Sync(c.Request.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrSyncInProgress) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// RecentSyncs lists recent sync runs, newest first
// GET /api/inventory/syncs?limit=20
func (h *InventoryHandler) RecentSyncs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := h.inventoryUsecase.RecentSyncs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(runs), "syncs": runs})
}
