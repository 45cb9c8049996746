package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hot-product-trends/internal/feed"
	"hot-product-trends/internal/trend"
)

type handlers struct {
	fetcher ProductFetcher
	sink    ProductSink
	logger  zerolog.Logger
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /products?category=&page=
func (h *handlers) products(c *gin.Context) {
	category, page, ok := h.listingParams(c)
	if !ok {
		return
	}

	products, err := h.fetcher.FetchHotProducts(c.Request.Context(), category, page)
	if err != nil {
		h.writeFetchError(c, err)
		return
	}

	h.sink.PersistBestEffort(products)
	c.JSON(http.StatusOK, gin.H{"data": products})
}

// GET /categories
func (h *handlers) categories(c *gin.Context) {
	raw, err := h.fetcher.FetchCategories(c.Request.Context())
	if err != nil {
		h.writeFetchError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// GET /trend-summary?category=&page=
func (h *handlers) trendSummary(c *gin.Context) {
	category, page, ok := h.listingParams(c)
	if !ok {
		return
	}

	products, err := h.fetcher.FetchHotProducts(c.Request.Context(), category, page)
	if err != nil {
		h.writeFetchError(c, err)
		return
	}

	h.sink.PersistBestEffort(products)
	c.JSON(http.StatusOK, trend.Summarize(products))
}

// listingParams validates category and coerces non-positive page to 1.
func (h *handlers) listingParams(c *gin.Context) (string, int, bool) {
	category := strings.TrimSpace(c.Query("category"))
	if category == "" {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:  "validation_error",
			Error: "category parameter is required",
		})
		return "", 0, false
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}
	return category, page, true
}

func (h *handlers) writeFetchError(c *gin.Context, err error) {
	var (
		transportErr *feed.TransportError
		upstreamErr  *feed.UpstreamError
		decodeErr    *feed.DecodeError
	)

	switch {
	case errors.Is(err, feed.ErrCategoryRequired):
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:  "validation_error",
			Error: err.Error(),
		})
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusBadGateway, errorResponse{
			Code:  "upstream_error",
			Error: err.Error(),
		})
	case errors.As(err, &transportErr):
		c.JSON(http.StatusBadGateway, errorResponse{
			Code:  "transport_error",
			Error: err.Error(),
		})
	case errors.As(err, &decodeErr):
		c.JSON(http.StatusBadGateway, errorResponse{
			Code:  "decode_error",
			Error: err.Error(),
		})
	default:
		h.logger.Error().Err(err).Msg("unexpected fetch failure")
		c.JSON(http.StatusInternalServerError, errorResponse{
			Code:  "internal_error",
			Error: "internal server error",
		})
	}
}
