package handler

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bataanroutes/route-backend-go/internal/models"
	"github.com/bataanroutes/route-backend-go/internal/service"
	"github.com/bataanroutes/route-backend-go/pkg/response"
)

// RouteHandler handles HTTP requests for route optimization
type RouteHandler struct {
	service *service.RouteService
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(service *service.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// OptimizeRoute computes a flood-risk-assessed route
// POST /optimize-route
func (h *RouteHandler) OptimizeRoute(c *gin.Context) {
	var req models.OptimizeRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Optimize(c.Request.Context(), *req.Start, *req.End)
	if err != nil {
		status := statusForError(err)
		response.Error(c, status, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.OptimizeRouteResponse{
		RouteID:              result.RouteID,
		Geometry:             result.Polyline.Geometry(),
		RiskScore:            round2(result.Assessment.RiskScore),
		RiskTier:             string(result.Assessment.RiskTier),
		FloodIntersections:   result.Assessment.IntersectionCount,
		DistanceKm:           round2(result.Polyline.DistanceKm),
		EstimatedTimeMinutes: int(math.Round(result.Polyline.DurationMinutes)),
		Warnings:             result.Assessment.Warnings,
		AlternativeAvailable: result.Assessment.AlternativeAvailable,
	})
}

// statusForError maps the domain error taxonomy to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidRouteRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrProviderUnavailable):
		return http.StatusBadGateway
	default:
		// includes ErrInvalidGeometry: an internal consistency failure
		return http.StatusInternalServerError
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
