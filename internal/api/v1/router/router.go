package router

import (
	"context"
	"net/http"

	"seoanalyzer/internal/api/v1/handler"
	"seoanalyzer/internal/api/v1/middleware"
	"seoanalyzer/internal/config"
	"seoanalyzer/internal/log"
	"seoanalyzer/internal/metrics"
	"seoanalyzer/pkg/response"
)

const basePath = "/api"

// New builds the API handler. Background work started for it stops when ctx
// is done.
func New(ctx context.Context, h *handler.Handler, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	register := func(path string, hf http.HandlerFunc) {
		mux.HandleFunc(basePath+path, hf)
	}

	register("/health", handler.HealthCheckHandler)
	register("/analyze", h.AnalyzePageHandler)

	var api http.Handler = mux
	if cfg.HasBasicAuth() {
		api = middleware.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass)(api)
	}
	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	return middleware.RecoverPanic(
		log.Logger,
		func(w http.ResponseWriter, r *http.Request, err error) {
			response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		},
		middleware.SecureHeaders(
			middleware.Logging(
				middleware.Metrics(middleware.RouteOf(mux))(
					middleware.CORS(cfg.CORSAllowedOrigin)(
						limiter.Middleware(api),
					),
				),
			),
		),
	)
}

func NewMetricsRouter() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}
