package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"ridehail/internal/catalog"
	"ridehail/internal/recommend"
	"ridehail/internal/services"
	"ridehail/internal/staticmap"
)

// respondError maps service sentinels to HTTP statuses.
//
// Go Learning Note — errors.Is in a switch:
// `switch { case errors.Is(err, X): ... }` checks each sentinel in order and
// still matches when a lower layer wrapped the error with fmt.Errorf("%w").
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, recommend.ErrInvalidLocation), errors.Is(err, services.ErrInvalidDestination):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, recommend.ErrUnknownPolicy), errors.Is(err, catalog.ErrUnknownCategory):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrGeocodingDisabled),
		errors.Is(err, services.ErrMapsDisabled),
		errors.Is(err, staticmap.ErrMissingAPIKey):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		c.Error(err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
