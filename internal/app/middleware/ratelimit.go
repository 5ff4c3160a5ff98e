package middleware

import (
	"fmt"
	"net/http"

	"crisiscorner/internal/app/config"
	"crisiscorner/internal/app/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit ограничивает число запросов с одного IP. Без store счётчики живут в памяти процесса.
func RateLimit(cfg config.RateLimitConfig, store limiter.Store) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate limit %q: %w", cfg.Rate, err)
	}

	if store == nil {
		store = memory.NewStore()
	}

	return mgin.NewMiddleware(
		limiter.New(store, rate),
		mgin.WithLimitReachedHandler(limitReached),
		mgin.WithErrorHandler(limiterError),
	), nil
}

func limitReached(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: "Too many requests"})
}

func limiterError(c *gin.Context, err error) {
	log.WithError(err).WithField("request_id", GetRequestID(c)).Error("rate limiter store failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}
