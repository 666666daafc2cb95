package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"ridehail/internal/catalog"
	"ridehail/internal/domain/entities"
	"ridehail/internal/recommend"
	"ridehail/internal/services"
)

type DestinationHandler struct {
	recommendationService *services.RecommendationService
}

func NewDestinationHandler(recommendationService *services.RecommendationService) *DestinationHandler {
	return &DestinationHandler{
		recommendationService: recommendationService,
	}
}

type NearbyQuery struct {
	Lat      *float64 `form:"lat" binding:"required"`
	Lng      *float64 `form:"lng" binding:"required"`
	Policy   string   `form:"policy"`
	RadiusKm float64  `form:"radius_km" binding:"gte=0"`
}

// Nearby handles GET /destinations/nearby
func (h *DestinationHandler) Nearby(c *gin.Context) {
	var q NearbyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	policy, err := recommend.ParsePolicy(q.Policy)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.recommendationService.Nearby(requestContext(c), services.NearbyRequest{
		Location: entities.NewLocation(*q.Lat, *q.Lng),
		Options:  recommend.Options{Policy: policy, RadiusKm: q.RadiusKm},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type CatalogQuery struct {
	Category string `form:"category"`
}

type catalogGroupResponse struct {
	Category entities.Category `json:"category"`
	Label    string            `json:"label"`
	POIs     []entities.POI    `json:"pois"`
}

type catalogResponse struct {
	Groups []catalogGroupResponse `json:"groups"`
	// BBox is [minLng, minLat, maxLng, maxLat], as in GeoJSON.
	BBox []float64 `json:"bbox,omitempty"`
}

// Catalog handles GET /destinations/catalog
func (h *DestinationHandler) Catalog(c *gin.Context) {
	var q CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var only entities.Category
	if q.Category != "" {
		category, ok := entities.ParseCategory(q.Category)
		if !ok {
			respondError(c, fmt.Errorf("%w: %q", catalog.ErrUnknownCategory, q.Category))
			return
		}
		only = category
	}

	resp := catalogResponse{Groups: []catalogGroupResponse{}}
	for _, g := range h.recommendationService.Catalog() {
		if only != "" && g.Category != only {
			continue
		}
		resp.Groups = append(resp.Groups, catalogGroupResponse{
			Category: g.Category,
			Label:    g.Category.Label(),
			POIs:     g.POIs,
		})
	}
	if b, ok := h.recommendationService.CatalogBound(); ok {
		resp.BBox = []float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
	}

	c.JSON(http.StatusOK, resp)
}
