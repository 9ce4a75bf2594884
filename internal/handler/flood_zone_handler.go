package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bataanroutes/route-backend-go/internal/floodzone"
)

// FloodZoneHandler serves the loaded flood zone polygons
type FloodZoneHandler struct {
	store *floodzone.Store
}

// NewFloodZoneHandler creates a new flood zone handler
func NewFloodZoneHandler(store *floodzone.Store) *FloodZoneHandler {
	return &FloodZoneHandler{store: store}
}

// List returns all flood zones as a GeoJSON FeatureCollection
// GET /flood-zones
func (h *FloodZoneHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.FeatureCollection())
}
