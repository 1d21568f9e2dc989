package ddns

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/cloudprovider/cloudflare"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/config"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/console"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/ipprovider"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/metrics"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/syncer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

type HealthHandler struct {
	ready *atomic.Bool
}

func (handle *HealthHandler) alive(w http.ResponseWriter, r *http.Request) {
	metrics.IncrementReqs(r)
	w.WriteHeader(http.StatusOK)
}

func (handle *HealthHandler) readyz(w http.ResponseWriter, r *http.Request) {
	metrics.IncrementReqs(r)
	if !handle.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func newHealthRouter(ready *atomic.Bool) *http.ServeMux {
	health := &HealthHandler{ready: ready}
	router := http.NewServeMux()
	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/health/ready", health.readyz)
	router.HandleFunc("/health/alive", health.alive)
	return router
}

// Start loads configuration from args and the environment, resolves the
// record to manage and then keeps it in sync until ctx is cancelled.
// Cancellation is not an error.
func Start(ctx context.Context, args []string, logger *console.Logger) error {
	if err := config.LoadEnvFile(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	return run(ctx, cfg, logger)
}

func run(ctx context.Context, cfg *config.Config, logger *console.Logger) error {
	metrics.InitMetrics()

	// one pooled client for every outbound request
	client := cleanhttp.DefaultPooledClient()
	cloudProvider := cloudflare.NewCloudflareProvider(cloudflare.Configuration{
		Token:      cfg.APIToken,
		APIUrl:     cfg.APIUrl,
		HTTPClient: client,
	})
	ipProvider := ipprovider.NewProvider(cfg.IPProvider, client)
	agent := syncer.New(cloudProvider, ipProvider, cfg.DNSName, cfg.Interval, logger)

	logger.Infof("Watching %s using %s every %s", cfg.DNSName, ipprovider.GetProviderName(ipProvider), cfg.Interval)
	return serve(ctx, cfg.MetricsAddress, agent, logger)
}

// serve runs the health server next to the agent. Only the agent decides the
// outcome: a health server that cannot listen is logged and left down, and a
// cancelled ctx is a clean stop even while startup lookups are in flight.
func serve(ctx context.Context, metricsAddress string, agent *syncer.Syncer, logger *console.Logger) error {
	var ready atomic.Bool
	g, ctx := errgroup.WithContext(ctx)
	if metricsAddress != "" {
		server := &http.Server{
			Addr:              metricsAddress,
			Handler:           newHealthRouter(&ready),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("listen health server: %v", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return stopServer(server)
		})
	}

	g.Go(func() error {
		if err := agent.Init(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		ready.Store(true)
		err := agent.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	return g.Wait()
}

func stopServer(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("health server unable to shutdown: %w", err)
	}
	return nil
}
