package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"ridehail/internal/domain/entities"
	"ridehail/internal/services"
)

type LocationHandler struct {
	locationService *services.LocationService
}

func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

type PositionQuery struct {
	Lat *float64 `form:"lat" binding:"required"`
	Lng *float64 `form:"lng" binding:"required"`
}

type MapQuery struct {
	PositionQuery
	DestLat *float64 `form:"dest_lat" binding:"required_with=DestLng"`
	DestLng *float64 `form:"dest_lng" binding:"required_with=DestLat"`
}

// Address handles GET /location/address
func (h *LocationHandler) Address(c *gin.Context) {
	var q PositionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.locationService.Address(requestContext(c), entities.NewLocation(*q.Lat, *q.Lng))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Map handles GET /location/map
func (h *LocationHandler) Map(c *gin.Context) {
	var q MapQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dest *entities.Location
	if q.DestLat != nil && q.DestLng != nil {
		d := entities.NewLocation(*q.DestLat, *q.DestLng)
		dest = &d
	}

	mapURL, err := h.locationService.MapURL(entities.NewLocation(*q.Lat, *q.Lng), dest)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": mapURL})
}
