package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"funcionarioService/internal/config"
	"funcionarioService/repository"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps bundles what the HTTP surface needs.
type Deps struct {
	Store    repository.FuncionarioStore
	DB       Pinger
	Logger   logrus.FieldLogger
	Registry *prometheus.Registry
}

// NewRouter wires the middleware chain, the /Funcionario routes, health and metrics.
func NewRouter(cfg *config.Config, deps Deps) (http.Handler, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if deps.Store == nil || deps.Logger == nil {
		return nil, errors.New("store and logger are required")
	}

	chain := []mux.MiddlewareFunc{WithRequestID(cfg.HTTP.RequestIDHeader), WithLogger(deps.Logger)}
	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = deps.Registry
		if reg == nil {
			reg = prometheus.NewRegistry()
		}
		m, err := NewMetrics(reg)
		if err != nil {
			return nil, err
		}
		chain = append(chain, m.Middleware())
	}

	r := mux.NewRouter()
	r.Use(chain...)
	// mux skips Use middleware when no route matches, so the fallbacks get the chain explicitly.
	r.NotFoundHandler = applyChain(chain, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, msgNoRoute)
	}))
	r.MethodNotAllowedHandler = applyChain(chain, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, msgNoMethod)
	}))
	if reg != nil {
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	NewFuncionarioHandler(deps.Store, deps.Logger).Register(r)
	r.HandleFunc("/healthz", healthz(deps.DB)).Methods(http.MethodGet)

	if len(cfg.CORS.AllowedOrigins) == 0 {
		return r, nil
	}
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", cfg.HTTP.RequestIDHeader},
		ExposedHeaders: []string{cfg.HTTP.RequestIDHeader},
	})
	return c.Handler(r), nil
}

// applyChain wraps h so that chain[0] runs first, matching mux's Use order.
func applyChain(chain []mux.MiddlewareFunc, h http.Handler) http.Handler {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// StartHTTP listens on cfg.Address and serves h in the background. It returns the bound
// address and a shutdown function that drains in-flight requests until ctx ends, then
// closes the remaining connections.
func StartHTTP(cfg config.HTTPConfig, h http.Handler, logger logrus.FieldLogger) (string, func(context.Context) error, error) {
	addr := cfg.Address
	if addr == "" {
		addr = ":5000"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("http server stopped")
		}
	}()
	return lis.Addr().String(), func(ctx context.Context) error {
		err := srv.Shutdown(ctx)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			// Drain deadline passed; drop whatever is still open.
			_ = srv.Close()
		}
		return err
	}, nil
}
