package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"ledmatrix/pkg/device/matrix"
	"ledmatrix/pkg/device/remote"
	"ledmatrix/pkg/fleet"
	"ledmatrix/pkg/locator"
	"ledmatrix/pkg/logging"
	"ledmatrix/pkg/metrics"
	"ledmatrix/pkg/proto"
)

var listen = flag.String("listen", ":9124", "listen addr")
var concurrency = flag.Int("concurrency", 1, "devices written in parallel")
var retries = flag.Int("retries", 0, "extra attempts per device on transport errors")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	fx.New(app()).Run()
}

func app() fx.Option {
	return fx.Options(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Provide(
			func() (*zap.Logger, error) {
				return logging.New(*debug)
			},
			func() (*http.ServeMux, *http.Server) {
				mux := http.NewServeMux()
				return mux, &http.Server{Addr: *listen, Handler: mux}
			},
			metrics.NewRegistry,
			func(reg *prometheus.Registry) *metrics.Metrics {
				return metrics.New(reg)
			},
			func(logger *zap.Logger) fleet.Discoverer {
				return locator.New(logger)
			},
			newFleet,
		),
		fx.Invoke(
			func(mux *http.ServeMux, reg *prometheus.Registry) {
				mux.Handle("/metrics", metrics.Handler(reg))
			},
			func(f *fleet.Fleet, srv *http.Server, mux *http.ServeMux, logger *zap.Logger, lc fx.Lifecycle) error {
				return remote.Proxy(f, srv, mux, logger, lc)
			},
		),
	)
}

func newFleet(disc fleet.Discoverer, m *metrics.Metrics, logger *zap.Logger) *fleet.Fleet {
	open := func(id locator.Identity) proto.Control {
		return matrix.New(id, logger, matrix.WithRetries(*retries), matrix.WithObserver(m))
	}
	return fleet.New(disc, open, logger, fleet.WithConcurrency(*concurrency), fleet.WithObserver(m))
}
