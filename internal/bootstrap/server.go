package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/Domenick1991/flightboard/api"
	"github.com/Domenick1991/flightboard/config"
	"github.com/Domenick1991/flightboard/internal/service/flights"
	"github.com/Domenick1991/flightboard/internal/stream"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run starts the HTTP server (board reads, SSE stream, health, metrics) and
// blocks until the context is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, hub *stream.Hub) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(flightSvc, hub),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

func newRouter(flightSvc flights.FlightUseCase, hub *stream.Hub) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	flightHandler := api.NewFlightHandler(flightSvc)
	flightHandler.Register(router.Group("/flights"))

	streamHandler := api.NewStreamHandler(hub)
	streamHandler.Register(router.Group("/stream"))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
