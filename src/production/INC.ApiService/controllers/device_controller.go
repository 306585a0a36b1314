package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logger "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Logger"
	incmodels "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Models"
	interfaces "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Repository/Interfaces"
)

// DeviceController serves the read-only query endpoints used by the
// dashboard: device list, per-device history, available years, date range.
type DeviceController struct {
	readingRepo interfaces.ReadingRepository
	cache       *QueryCache
	logger      *logger.Logger
}

// NewDeviceController creates a new device controller
func NewDeviceController(readingRepo interfaces.ReadingRepository, cache *QueryCache, logger *logger.Logger) *DeviceController {
	return &DeviceController{
		readingRepo: readingRepo,
		cache:       cache,
		logger:      logger,
	}
}

// RegisterRoutes registers the device routes with Gin
func (c *DeviceController) RegisterRoutes(router *gin.Engine) {
	devices := router.Group("/devices")
	{
		devices.GET("", c.ListDevices)
		devices.GET("/:device_id/history", c.GetHistory)
		devices.GET("/:device_id/years", c.GetAvailableYears)
		devices.GET("/:device_id/range", c.GetDateRange)
	}
}

func (c *DeviceController) ListDevices(ctx *gin.Context) {
	var devices []string
	if c.cache.Get(ctx, deviceListKey(), &devices) {
		ctx.JSON(http.StatusOK, devices)
		return
	}

	devices, err := c.readingRepo.ListDevices(ctx)
	if err != nil {
		c.logger.ErrorWithError(err, "failed to list devices")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list devices"})
		return
	}
	if devices == nil {
		devices = []string{}
	}

	c.cache.Set(ctx, deviceListKey(), devices)
	ctx.JSON(http.StatusOK, devices)
}

func (c *DeviceController) GetHistory(ctx *gin.Context) {
	params := interfaces.HistoryParams{
		DeviceID:  ctx.Param("device_id"),
		StartDate: ctx.Query("startDate"),
		EndDate:   ctx.Query("endDate"),
	}

	history, err := c.readingRepo.GetHistory(ctx, params)
	if err != nil {
		c.logger.ErrorWithError(err, "failed to fetch history")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}
	if history == nil {
		history = []incmodels.Reading{}
	}

	ctx.JSON(http.StatusOK, history)
}

func (c *DeviceController) GetAvailableYears(ctx *gin.Context) {
	deviceID := ctx.Param("device_id")

	years, err := c.readingRepo.GetAvailableYears(ctx, deviceID)
	if err != nil {
		c.logger.ErrorWithError(err, "failed to fetch available years")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch available years"})
		return
	}
	if years == nil {
		years = []int{}
	}

	ctx.JSON(http.StatusOK, years)
}

func (c *DeviceController) GetDateRange(ctx *gin.Context) {
	deviceID := ctx.Param("device_id")

	var cached incmodels.DateRange
	if c.cache.Get(ctx, dateRangeKey(deviceID), &cached) {
		ctx.JSON(http.StatusOK, cached)
		return
	}

	rng, err := c.readingRepo.GetDateRange(ctx, deviceID)
	if err != nil {
		c.logger.ErrorWithError(err, "failed to fetch date range")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch date range"})
		return
	}

	c.cache.Set(ctx, dateRangeKey(deviceID), rng)
	ctx.JSON(http.StatusOK, rng)
}
