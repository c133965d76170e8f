package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/kgzivf/blogbackend/internal/blog"
	"github.com/kgzivf/blogbackend/internal/config"
	"github.com/kgzivf/blogbackend/internal/db"
	"github.com/kgzivf/blogbackend/internal/middleware"
	"github.com/kgzivf/blogbackend/internal/proxy"
	"github.com/kgzivf/blogbackend/internal/telemetry/metrics"
	"github.com/kgzivf/blogbackend/internal/telemetry/tracing"
	"github.com/kgzivf/blogbackend/internal/transport"
	"github.com/kgzivf/blogbackend/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const healthCheckTimeout = 5 * time.Second

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	adminKeyHash      string

	config      *config.Config
	dbPool      *pgxpool.Pool
	sqlExecutor *transport.SQLExecutor
	backend     *BlogBackend
	httpClient  *http.Client

	redisClient *redis.Client
	rateLimiter middleware.RequestRateLimiter

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	AdminKeyHash            string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	var (
		dbPool           *pgxpool.Pool
		pgxpoolCollector prometheus.Collector
	)
	if dbURL := cfg.DatabaseURL(); dbURL != "" {
		var err error
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			URL:             dbURL,
			MinConns:        cfg.Database.PoolMin,
			MaxConns:        cfg.Database.PoolMax,
			MaxConnIdleTime: cfg.Database.PoolIdleTimeout.Duration,
			TracingEnabled:  params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}

		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		pgxpoolCollector = pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": "kgzivf_blog"},
		)
	} else {
		log.Debugln("no database url configured, sql endpoints disabled")
	}

	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("blog", "api", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	var rdb *redis.Client
	if cfg.RedisHost != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "blog-backend", rdb)
	if err != nil {
		closePool(dbPool)
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	backend, err := NewBlogBackend(cfg, BlogBackendDeps{
		Pool:        dbPool,
		HTTPClient:  tracedHttpClient,
		RedisClient: rdb,
		Metrics:     metricsManager,
	})
	if err != nil {
		otelShutdown()
		closePool(dbPool)
		return nil, fmt.Errorf("new blog backend: %w", err)
	}
	log.Infof("blog backend [%s], deployment [%s]", cfg.Backend, cfg.Deployment)

	s := &Server{
		config:       cfg,
		adminKeyHash: params.AdminKeyHash,
		dbPool:       dbPool,
		backend:      backend,
		httpClient:   tracedHttpClient,
		redisClient:  rdb,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if dbPool != nil {
		s.sqlExecutor = transport.NewSQLExecutor(transport.NewSQLExecutorParams{
			DB:             dbPool,
			TouchColumn:    cfg.Database.TouchColumn,
			ConnectionType: cfg.ConnectionType(),
			Metrics:        metricsManager,
		})
	}
	if rdb != nil {
		s.rateLimiter = redis_rate.NewLimiter(rdb)
	}

	return s, nil
}

func closePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

type healthResponse struct {
	Status     string `json:"status"`
	Backend    string `json:"backend"`
	Deployment string `json:"deployment"`
	Database   string `json:"database"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := healthResponse{
		Status:     "ok",
		Backend:    string(s.config.Backend),
		Deployment: string(s.config.Deployment),
		Database:   "ok",
	}
	status := http.StatusOK
	if err := s.backend.Health(ctx); err != nil {
		log.Warnf("health check, blog backend: %s", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	pkg.WriteJSON(w, resp, status)
}

func (s *Server) proxyHandler() *proxy.Handler {
	params := proxy.NewHandlerParams{
		TouchColumn: s.config.Database.TouchColumn,
		Supabase: proxy.SupabaseConfig{
			URL:     s.config.REST.SupabaseURL,
			AnonKey: s.config.REST.AnonKey,
		},
		HTTPClient: s.httpClient,
		Timeout:    s.config.REST.Timeout.Duration,
	}
	if s.sqlExecutor != nil {
		params.Runner = s.sqlExecutor
	}
	return proxy.NewHandler(params)
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("blog-router"))

	blogHandler := blog.NewHandler(s.backend.Service)
	blogHandler.SetupRoutes(r)

	s.proxyHandler().SetupRoutes(r)

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	adminMiddleware := middleware.NewAdminKeyHandler(
		s.adminKeyHash,
		blog.AdminPathPrefix,
		proxy.PostgreSQLPath,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins, proxy.SupabaseProxyPath))
	if s.rateLimiter != nil {
		r.Use(middleware.RateLimit(
			s.rateLimiter,
			s.metricsManager,
			"blog-proxy",
			s.config.ProxyRateLimitPerMin,
			proxy.PostgreSQLPath,
			proxy.SupabaseProxyPath,
		))
	}
	r.Use(adminMiddleware.AdminKeyCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the pool and clients go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
