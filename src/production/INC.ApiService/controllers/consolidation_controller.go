package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	consolidator "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Consolidator"
	logger "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Logger"
	incmodels "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Models"
)

// ConsolidationController handles spreadsheet upload requests
type ConsolidationController struct {
	service *consolidator.Service
	cache   *QueryCache
	logger  *logger.Logger
}

// NewConsolidationController creates a new consolidation controller
func NewConsolidationController(service *consolidator.Service, cache *QueryCache, logger *logger.Logger) *ConsolidationController {
	return &ConsolidationController{
		service: service,
		cache:   cache,
		logger:  logger,
	}
}

// RegisterRoutes registers the consolidation routes with Gin
func (c *ConsolidationController) RegisterRoutes(router *gin.Engine) {
	readings := router.Group("/readings")
	{
		readings.POST("/consolidate", c.Consolidate)
	}
}

func (c *ConsolidationController) Consolidate(ctx *gin.Context) {
	var req incmodels.UploadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.logger.Logger.Info().
		Str("device_id", req.DeviceID).
		Str("file_name", req.FileName).
		Int("rows", len(req.Rows)).
		Msg("receiving upload")

	result, err := c.service.Consolidate(ctx, req.DeviceID, req.FileName, req.Rows)
	if err != nil {
		if errors.Is(err, consolidator.ErrEmptyBatch) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "no valid rows received"})
			return
		}
		if consolidator.IsUniqueViolation(err) {
			// Lost a race with a concurrent upload of overlapping data; the
			// transaction is rolled back and a retry will skip the records.
			c.logger.ErrorWithError(err, "consolidation conflict")
			ctx.JSON(http.StatusConflict, gin.H{
				"error":     "concurrent upload detected, please retry",
				"retryable": true,
			})
			return
		}
		c.logger.ErrorWithError(err, "consolidation failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store readings"})
		return
	}

	if result.NewlyInserted > 0 {
		c.cache.InvalidateDevice(ctx, req.DeviceID)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":           "Consolidation complete.",
		"totalReceived":     result.TotalReceived,
		"newlyInserted":     result.NewlyInserted,
		"skippedDuplicates": result.SkippedDuplicates(),
	})
}
