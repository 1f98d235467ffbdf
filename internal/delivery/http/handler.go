package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tablescout/backend/internal/domain"
)

// maxResultLimit caps the client-supplied "max" parameter
const maxResultLimit = 20

// Recommender runs the recommendation pipeline for one query
type Recommender interface {
	Recommend(ctx context.Context, query domain.PlaceQuery) (*domain.RecommendationResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommender     Recommender
	defaultLocation string
}

// NewHandler creates a new HTTP handler
func NewHandler(recommender Recommender, defaultLocation string) *Handler {
	return &Handler{
		recommender:     recommender,
		defaultLocation: defaultLocation,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tablescout-backend",
		"version": "1.0.0",
	})
}

// GetRecommendations handles restaurant recommendation requests.
// Recognized query parameters: location, cuisine, time (RFC3339),
// radius (meters), max (final result cap).
func (h *Handler) GetRecommendations(c *gin.Context) {
	if h.recommender == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Recommendation service not configured",
		})
		return
	}

	query := domain.PlaceQuery{
		Location: c.DefaultQuery("location", h.defaultLocation),
		Cuisine:  c.Query("cuisine"),
	}

	if timeStr := c.Query("time"); timeStr != "" {
		when, err := time.Parse(time.RFC3339, timeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"message": "time must be RFC3339 formatted",
			})
			return
		}
		query.RequestedTime = when
	}

	if radiusStr := c.Query("radius"); radiusStr != "" {
		radius, err := strconv.Atoi(radiusStr)
		if err != nil || radius <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"message": "radius must be a positive integer",
			})
			return
		}
		query.RadiusMeters = radius
	}

	if maxStr := c.Query("max"); maxStr != "" {
		max, err := strconv.Atoi(maxStr)
		if err != nil || max <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"message": "max must be a positive integer",
			})
			return
		}
		if max > maxResultLimit {
			max = maxResultLimit
		}
		query.MaxResults = max
	}

	result, err := h.recommender.Recommend(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"message": err.Error(),
			})
			return
		}
		// Unexpected failure: truncated message only, never a stack trace
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": truncateMessage(err.Error(), 200),
		})
		return
	}

	// Every enabled provider failed and one of them couldn't geocode
	// the location: the query itself is unanswerable, report 404.
	// Partial failures stay 200-degraded.
	if allProvidersFailed(result) && hasLocationNotFound(result.ProviderErrors) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "location_not_found",
			"location": result.Location,
		})
		return
	}

	payload := gin.H{
		"recommendations": result.Recommendations,
		"requestedTime":   result.RequestedTime.Format(time.RFC3339),
		"location":        result.Location,
		"providerCounts":  result.ProviderCounts,
	}
	if msgs := providerErrorMessages(result.ProviderErrors); len(msgs) > 0 {
		payload["providerErrors"] = msgs
	}

	c.JSON(http.StatusOK, payload)
}

func allProvidersFailed(result *domain.RecommendationResult) bool {
	return len(result.ProviderErrors) > 0 &&
		len(result.ProviderErrors) == len(result.ProviderCounts)
}

func hasLocationNotFound(errs []error) bool {
	for _, err := range errs {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return true
		}
	}
	return false
}

// providerErrorMessages exposes truncated per-provider failures for
// observability without failing the request
func providerErrorMessages(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, truncateMessage(err.Error(), 200))
	}
	return msgs
}

func truncateMessage(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
