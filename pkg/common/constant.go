package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyComfortDBType string = "COMFORT_DB_TYPE"
	EnvKeyComfortDbPath string = "COMFORT_DB_PATH"

	EnvKeyComfortHttpHostPort string = "COMFORT_HTTP_HOST_PORT"

	EnvKeyComfortDefaultRate  string = "COMFORT_DEFAULT_RATE"
	EnvKeyComfortDefaultBurst string = "COMFORT_DEFAULT_BURST"

	EnvKeyComfortJwtSecret      string = "COMFORT_JWT_SECRET"
	EnvKeyComfortAccessTokenTTL string = "COMFORT_ACCESS_TOKEN_TTL_MINUTES"

	LoggerNameComfortCore   string = "comfort_core"
	LoggerNameRestfulServer string = "restful_server"

	LoggerFieldCategory string = "category"

	LoggerCategoryReading   string = "reading"
	LoggerCategoryAdvice    string = "advice"
	LoggerCategoryThreshold string = "threshold"
	LoggerCategoryOwnership string = "ownership"
	LoggerCategoryUser      string = "user"
)
