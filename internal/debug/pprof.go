package debug

import (
	"net/http"
	_ "net/http/pprof"
	"time"

	"go.uber.org/zap"

	"seoanalyzer/internal/log"
)

// StartPprof serves the default mux, where net/http/pprof registers itself.
// Only enabled in dev.
func StartPprof(host string) *http.Server {
	srv := &http.Server{
		Addr:              host,
		Handler:           http.DefaultServeMux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Logger.Info("pprof listening", zap.String("host", host))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Logger.Error("pprof failed", zap.Error(err))
		}
	}()
	return srv
}
