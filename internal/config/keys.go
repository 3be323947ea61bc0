package config

const (
	SERVER_ADDR              = "SERVER_ADDR"
	METRICS_ADDR             = "METRICS_ADDR"
	IS_DEV                   = "IS_DEV"
	FETCH_TIMEOUT            = "FETCH_TIMEOUT"
	USER_AGENT               = "USER_AGENT"
	USE_GPT_RECOMMENDATIONS  = "USE_GPT_RECOMMENDATIONS"
	OPENAI_API_KEY           = "OPENAI_API_KEY"
	OPENAI_BASE_URL          = "OPENAI_BASE_URL"
	OPENAI_MODEL             = "OPENAI_MODEL"
	RECOMMENDATION_TIMEOUT   = "RECOMMENDATION_TIMEOUT"
	RECOMMENDATION_CACHE_TTL = "RECOMMENDATION_CACHE_TTL"
	RATE_LIMIT_RPS           = "RATE_LIMIT_RPS"
	RATE_LIMIT_BURST         = "RATE_LIMIT_BURST"
	BASIC_AUTH_USER          = "BASIC_AUTH_USER"
	BASIC_AUTH_PASS          = "BASIC_AUTH_PASS"
	CORS_ALLOWED_ORIGIN      = "CORS_ALLOWED_ORIGIN"
)
