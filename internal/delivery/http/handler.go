package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/closetcompare/backend/internal/domain"
)

// SizingService is the sizing behaviour the handlers depend on
type SizingService interface {
	Charts(ctx context.Context) []domain.ChartKey
	Chart(ctx context.Context, gender, garmentClass string) (*domain.SizeChart, error)
	Convert(ctx context.Context, request *domain.ConvertRequest) (*domain.ConvertResult, error)
	Letter(ctx context.Context, numeric string) (*domain.LetterResult, error)
}

// RecommendationService is the recommender the handlers depend on
type RecommendationService interface {
	RankRequest(ctx context.Context, request *domain.RankRequest) ([]domain.ScoredItem, error)
	RecommendForProduct(ctx context.Context, productID string, limit int) ([]domain.ScoredItem, error)
}

// ProductService is the product lookup the handlers depend on
type ProductService interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	PriceSummary(ctx context.Context, id string) (*domain.PriceSummary, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	sizing          SizingService
	recommendations RecommendationService
	products        ProductService
	logger          zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(sizing SizingService, recommendations RecommendationService, products ProductService, logger zerolog.Logger) *Handler {
	return &Handler{
		sizing:          sizing,
		recommendations: recommendations,
		products:        products,
		logger:          logger,
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type itemsResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "closetcompare-backend",
		"version": "1.0.0",
	})
}

// ListCharts lists the available size charts
func (h *Handler) ListCharts(c *gin.Context) {
	keys := h.sizing.Charts(c.Request.Context())
	c.JSON(http.StatusOK, itemsResponse[domain.ChartKey]{Items: keys, Count: len(keys)})
}

// GetChart returns one size chart
func (h *Handler) GetChart(c *gin.Context) {
	chart, err := h.sizing.Chart(c.Request.Context(), c.Param("gender"), c.Param("class"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

// ConvertSize converts a size between systems
func (h *Handler) ConvertSize(c *gin.Context) {
	var request domain.ConvertRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, errors.Join(domain.ErrInvalidRequest, err))
		return
	}

	result, err := h.sizing.Convert(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// LetterSize maps a numeric women's tops size to a letter
func (h *Handler) LetterSize(c *gin.Context) {
	result, err := h.sizing.Letter(c.Request.Context(), c.Param("numeric"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Rank scores caller-supplied candidates against a reference item
func (h *Handler) Rank(c *gin.Context) {
	var request domain.RankRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, errors.Join(domain.ErrInvalidRequest, err))
		return
	}

	ranked, err := h.recommendations.RankRequest(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemsResponse[domain.ScoredItem]{Items: ranked, Count: len(ranked)})
}

// GetProduct returns a stored product
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Recommendations ranks stored products against the given one
func (h *Handler) Recommendations(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondError(c, domain.ErrInvalidRequest)
			return
		}
		limit = n
	}

	ranked, err := h.recommendations.RecommendForProduct(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemsResponse[domain.ScoredItem]{Items: ranked, Count: len(ranked)})
}

// PriceHistory returns the price summary of a product
func (h *Handler) PriceHistory(c *gin.Context) {
	summary, err := h.products.PriceSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("rid", requestID(c)).Msg("request failed")
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: msg, RequestID: requestID(c)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrCatalogAPIFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
