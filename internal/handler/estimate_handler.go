package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type EstimateHandler struct {
	pipeline Pipeline
}

func NewEstimateHandler(pipeline Pipeline) *EstimateHandler {
	return &EstimateHandler{pipeline: pipeline}
}

// EstimateSingle estimates one ad-hoc item for the page-injection script.
// It bypasses the cache entirely.
func (h *EstimateHandler) EstimateSingle(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item payload"})
		return
	}

	enriched := h.pipeline.EstimateOne(toWorkItem(req))
	c.JSON(http.StatusOK, toItemResponse(enriched))
}
