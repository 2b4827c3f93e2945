package di

import (
	"context"
	"errors"
	"net/http"
	"time"

	"team_polls/configs"

	"github.com/go-pg/pg/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ServeHealthCheck exposes /<name>/healthcheck and /metrics until ctx is cancelled.
func ServeHealthCheck(ctx context.Context, config configs.HealthCheck, name string, database *pg.DB, logger *zap.SugaredLogger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/"+name+"/healthcheck", healthCheckHandler(database))
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: config.Address, Handler: mux}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("failed to shutdown http server", "error", err)
		}
	}()

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Errorw("failed to start http server", "error", err)
	}
}

func healthCheckHandler(database *pg.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(r.Context()); err != nil {
			http.Error(w, "database is not reachable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("I'm alive"))
	}
}
