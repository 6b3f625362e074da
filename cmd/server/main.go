package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"roomsense.io/room-comfort-service/pkg/auth"
	"roomsense.io/room-comfort-service/pkg/comfort"
	"roomsense.io/room-comfort-service/pkg/common"
	"roomsense.io/room-comfort-service/pkg/db"
	comfortHttp "roomsense.io/room-comfort-service/pkg/http"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	comfortDbType := os.Getenv(common.EnvKeyComfortDBType)
	switch comfortDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown COMFORT_DB_TYPE: " + comfortDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyComfortHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyComfortDefaultRate), 64); err != nil {
		log.Fatal("Invalid COMFORT_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyComfortDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid COMFORT_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	jwtSecret := strings.TrimSpace(os.Getenv(common.EnvKeyComfortJwtSecret))
	if jwtSecret == "" {
		log.Fatal("COMFORT_JWT_SECRET is not set in .env")
	}

	accessTTLMinutes := int64(15)
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyComfortAccessTokenTTL)); raw != "" {
		if accessTTLMinutes, err = strconv.ParseInt(raw, 10, 64); err != nil {
			log.Fatal("Invalid COMFORT_ACCESS_TOKEN_TTL_MINUTES, should be an int value")
		}
	}

	logger := common.GetLogger()

	tokenService := auth.NewTokenService(jwtSecret, time.Duration(accessTTLMinutes)*time.Minute)

	comfortCore := comfort.Comfort{
		Db:   *dbInstance,
		Auth: tokenService,
	}
	comfortCore.WithServices(comfort.ServiceOpts{
		Reading:   comfortCore.GetIReading(),
		Advice:    comfortCore.GetIAdvice(),
		Threshold: comfortCore.GetIThreshold(),
		Ownership: comfortCore.GetIOwnership(),
		User:      comfortCore.GetIUser(),
	})

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &comfortHttp.RestfulServer{
		Server:           gin.Default(),
		Comfort:          &comfortCore,
		RateLimiterStore: comfort.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
		Auth:             tokenService,
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
