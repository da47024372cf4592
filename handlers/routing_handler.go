package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mohamedthameursassi/trainroute/models"
	"github.com/mohamedthameursassi/trainroute/services"
)

const apiVersion = "v1"

type RoutingHandler struct {
	routingService *services.RoutingService
	logger         *slog.Logger
}

func NewRoutingHandler(routingService *services.RoutingService, logger *slog.Logger) *RoutingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoutingHandler{
		routingService: routingService,
		logger:         logger,
	}
}

func (h *RoutingHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.Health)
	router.GET("/api/stations", h.ListStations)
	router.GET("/api/routes/duration", h.TripDuration)
}

func (h *RoutingHandler) Health(c *gin.Context) {
	if err := h.routingService.CheckNetwork(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *RoutingHandler) ListStations(c *gin.Context) {
	start := time.Now()
	if err := h.routingService.CheckNetwork(); err != nil {
		h.fail(c, http.StatusServiceUnavailable, "network_unavailable", err)
		return
	}

	names := h.routingService.Stations()
	count := len(names)
	c.JSON(http.StatusOK, models.ApiResponse{
		Success: true,
		Data:    models.StationsResponse{Stations: names, Count: count},
		Meta:    meta(start, &count),
	})
}

func (h *RoutingHandler) TripDuration(c *gin.Context) {
	start := time.Now()

	var query models.TripQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.fail(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.routingService.TripDuration(c.Request.Context(), query.Origin, query.Destination)
	switch {
	case errors.Is(err, services.ErrStationNotFound):
		h.fail(c, http.StatusNotFound, "station_not_found", err)
		return
	case errors.Is(err, services.ErrNetworkNotLoaded),
		errors.Is(err, services.ErrNetworkInvalid),
		errors.Is(err, services.ErrNoStations):
		h.fail(c, http.StatusServiceUnavailable, "network_unavailable", err)
		return
	case err != nil:
		h.logger.Error("trip query failed", "origin", query.Origin, "destination", query.Destination, "error", err)
		h.fail(c, http.StatusInternalServerError, "internal_error", err)
		return
	}

	c.JSON(http.StatusOK, models.ApiResponse{
		Success: true,
		Data:    models.NewTripResponse(result),
		Meta:    meta(start, nil),
	})
}

func (h *RoutingHandler) fail(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ApiResponse{
		Success: false,
		Error: &models.ApiError{
			Code:    code,
			Message: http.StatusText(status),
			Details: err.Error(),
		},
	})
}

func meta(start time.Time, count *int) *models.MetaData {
	return &models.MetaData{
		ProcessTime: fmt.Sprintf("%.3f", float64(time.Since(start).Microseconds())/1000),
		ApiVersion:  apiVersion,
		ResultCount: count,
	}
}
