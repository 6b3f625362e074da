package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"roomsense.io/room-comfort-service/pkg/auth"
	"roomsense.io/room-comfort-service/pkg/comfort"
)

type RestfulServer struct {
	Server           *gin.Engine
	Comfort          *comfort.Comfort
	RateLimiterStore *comfort.RateLimiterStore
	Auth             *auth.TokenService
}

func (rs *RestfulServer) GetLimiter(chipID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(chipID)
	}
}

func (rs *RestfulServer) CheckChipLimiter(chipID string) bool {
	limiter := rs.GetLimiter(chipID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(chipID string, chipRate float64, chipBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(chipID, rate.Limit(chipRate), chipBurst)
}

// RequireAuth verifies the bearer token and stores the caller's identity on
// the context. A server constructed without a token service (tests) lets
// everything through.
func (rs *RestfulServer) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rs.Auth == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := rs.Auth.ParseAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("auth_user_id", claims.UserID)
		c.Set("auth_username", claims.Username)
		c.Next()
	}
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	sensordata := rs.Server.Group("/sensordata")
	{
		sensordata.POST("", rs.PostReading)

		chip := sensordata.Group("/chip/:chip_id")
		{
			chip.GET("/latest", rs.GetLatestReading)
			chip.GET("/history", rs.GetReadingHistory)
		}

		sensordata.GET("/rooms/:user_id", rs.RequireAuth(), rs.GetRooms)

		ownership := sensordata.Group("/ownership")
		{
			ownership.POST("", rs.RequireAuth(), rs.RegisterOwnership)
			ownership.PUT("", rs.RequireAuth(), rs.UpdateOwnership)
			ownership.DELETE("/:chip_id/user/:user_id", rs.RequireAuth(), rs.DeleteOwnership)
			ownership.GET("/:chip_id/latest", rs.SyncOwnership)
		}

		sensordata.POST("/limiter/:chip_id", rs.PostLimiter)
	}

	settings := rs.Server.Group("/settings", rs.RequireAuth())
	{
		settings.GET("/effective/:chip_id", rs.GetEffectiveSettings)
		settings.GET("/adjustments/:chip_id/:parameter", rs.GetAdjustment)
		settings.PUT("/adjustments/:chip_id/:parameter", rs.PutAdjustment)
		settings.POST("/adjustments/:chip_id", rs.PostAbsoluteAdjustments)
		settings.GET("/advice/:chip_id/latest", rs.GetLatestAdvice)
		settings.POST("/advice/:chip_id/save-latest", rs.SaveLatestAdvice)
		settings.GET("/advice/:chip_id/history", rs.GetAdviceHistory)
	}

	users := rs.Server.Group("/users")
	{
		users.POST("/register", rs.RegisterUser)
		users.POST("/login", rs.LoginUser)
		users.POST("/refresh", rs.RefreshUser)

		byID := users.Group("/id/:user_id", rs.RequireAuth())
		{
			byID.GET("", rs.GetUsername)
			byID.GET("/profile", rs.GetUserProfile)
			byID.PUT("/username", rs.PutUsername)
		}
	}
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// replyError maps the domain error taxonomy onto HTTP statuses. Anything not
// in the taxonomy is a 500.
func replyError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, comfort.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, comfort.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, comfort.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, comfort.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, comfort.ErrPreconditionRequired):
		status = http.StatusPreconditionRequired
	case errors.Is(err, comfort.ErrPreconditionFailed):
		status = http.StatusPreconditionFailed
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
