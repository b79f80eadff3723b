package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/wardrobe-advisor/internal/domain/wardrobe"
	apperrors "github.com/yanqian/wardrobe-advisor/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	wardrobeSvc wardrobe.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(wardrobeSvc wardrobe.Service, logger *slog.Logger) *Handler {
	return &Handler{
		wardrobeSvc: wardrobeSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// RecommendWardrobe picks items from the submitted image URLs for today's weather.
func (h *Handler) RecommendWardrobe(c *gin.Context) {
	var req wardrobe.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.wardrobeSvc.Recommend(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "recommendation_failed"
		switch {
		case apperrors.IsCode(err, apperrors.CodeInvalidInput):
			status = http.StatusBadRequest
			code = apperrors.CodeInvalidInput
		case apperrors.IsCode(err, apperrors.CodeInsufficientRecommendations):
			status = http.StatusBadRequest
			code = apperrors.CodeInsufficientRecommendations
		case apperrors.IsCode(err, apperrors.CodeRateLimitExceeded):
			status = http.StatusTooManyRequests
			code = apperrors.CodeRateLimitExceeded
		case apperrors.IsCode(err, apperrors.CodeWeatherProvider):
			code = apperrors.CodeWeatherProvider
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
