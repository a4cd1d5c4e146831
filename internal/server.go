package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/api/option"

	"github.com/2beens/activeweek/internal/backup"
	"github.com/2beens/activeweek/internal/config"
	"github.com/2beens/activeweek/internal/middleware"
	"github.com/2beens/activeweek/internal/storage"
	"github.com/2beens/activeweek/internal/telemetry/metrics"
	"github.com/2beens/activeweek/internal/telemetry/tracing"
	"github.com/2beens/activeweek/internal/workouts/api"
	workoutsmcp "github.com/2beens/activeweek/internal/workouts/mcp"
	"github.com/2beens/activeweek/internal/workouts/service"
	"github.com/2beens/activeweek/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	apiTokenHash      string

	config      *config.Config
	backend     *KVBackend
	limiterRdb  *redis.Client // only when the limiter has its own connection
	rateLimiter middleware.RequestRateLimiter
	workouts    *service.Service
	backups     *backup.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	APITokenHash            string
	RedisPassword           string
	PostgresPassword        string
	DriveCredentialsJSON    []byte
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (_ *Server, err error) {
	cfg := params.Config

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "activeweek")
	if err != nil {
		return nil, err
	}

	promRegistry := metrics.SetupPrometheus(params.VersionInfo, cfg.StorageBackend)
	metricsManager := metrics.NewManager("activeweek", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	backend, err := OpenKVBackend(ctx, cfg, BackendSecrets{
		RedisPassword:    params.RedisPassword,
		PostgresPassword: params.PostgresPassword,
	}, params.HoneycombTracingEnabled)
	if err != nil {
		otelShutdown()
		return nil, err
	}
	defer func() {
		if err != nil {
			backend.Close()
			otelShutdown()
		}
	}()

	if backend.DBPool != nil {
		if err := metrics.RegisterDBPool(promRegistry, backend.DBPool, cfg.PostgresDBName); err != nil {
			log.Warnf("register db pool metrics: %s", err)
		}
	}

	workoutsService, err := service.New(ctx, service.Params{
		Persister:      backend.Persister(cfg),
		MetricsManager: metricsManager,
		DebounceDelay:  cfg.PersistDebounce(),
	})
	if err != nil {
		return nil, fmt.Errorf("workouts service: %w", err)
	}

	s := &Server{
		config:       cfg,
		versionInfo:  params.VersionInfo,
		apiTokenHash: params.APITokenHash,
		backend:      backend,
		workouts:     workoutsService,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if cfg.RateLimitEnabled {
		s.setupRateLimiter(ctx, params.RedisPassword)
	}

	if cfg.BackupSchedule != "" {
		s.backups, err = s.newBackupService(ctx, params.DriveCredentialsJSON)
		if err != nil {
			return nil, fmt.Errorf("backups: %w", err)
		}
	}

	return s, nil
}

// setupRateLimiter reuses the storage redis connection when there is one.
// Without redis the API runs unlimited.
func (s *Server) setupRateLimiter(ctx context.Context, redisPassword string) {
	rdb := s.backend.RedisClient
	if rdb == nil {
		var err error
		rdb, err = storage.NewRedisClient(ctx, storage.RedisParams{
			Host:     s.config.RedisHost,
			Port:     s.config.RedisPort,
			Password: redisPassword,
		})
		if err != nil {
			log.Errorf("--> rate limiter disabled, redis unavailable: %s", err)
			return
		}
		s.limiterRdb = rdb
	}
	s.rateLimiter = redis_rate.NewLimiter(rdb)
}

func (s *Server) newBackupService(ctx context.Context, driveCredentialsJSON []byte) (*backup.Service, error) {
	var destination backup.Destination
	switch s.config.BackupDestination {
	case config.BackupDrive:
		if len(driveCredentialsJSON) == 0 {
			return nil, errors.New("drive backups need google drive credentials")
		}
		driveDestination, err := backup.NewDriveDestination(ctx, backup.DriveParams{
			FolderName: s.config.BackupDriveFolder,
			ShareWith:  s.config.BackupDriveShareWith,
		}, option.WithCredentialsJSON(driveCredentialsJSON))
		if err != nil {
			return nil, err
		}
		destination = driveDestination
	default:
		diskDestination, err := backup.NewDiskDestination(s.config.BackupDir, s.config.BackupKeep)
		if err != nil {
			return nil, err
		}
		destination = diskDestination
	}

	return backup.NewService(backup.Params{
		Exporter:       s.workouts,
		Destination:    destination,
		MetricsManager: s.metricsManager,
	})
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET").Name("root")
	r.HandleFunc("/version", s.handleVersion).Methods("GET", "OPTIONS").Name("version")

	var limit mux.MiddlewareFunc
	if s.rateLimiter != nil {
		limit = middleware.RateLimit(s.rateLimiter, "workouts", s.config.RateLimitAllowedPerMin, s.metricsManager)
	}
	api.NewHandler(s.workouts).SetupRoutes(r, limit)

	if s.backups != nil {
		runBackup := http.Handler(http.HandlerFunc(s.handleBackupRun))
		if limit != nil {
			runBackup = limit(runBackup)
		}
		r.Handle("/backups/run", runBackup).Methods("POST", "OPTIONS").Name("run-backup")
	}

	if s.config.MCPEnabled {
		mcpServer := workoutsmcp.NewServer(s.workouts, s.versionInfo)
		r.PathPrefix("/mcp").Handler(mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return mcpServer
		}, nil)).Name("mcp")
	}

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.apiTokenHash)
	if !authMiddleware.Enabled() {
		log.Warnln("API token hash not set, requests are not authenticated")
	}

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "activeweek")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, s.versionInfo)
}

func (s *Server) handleBackupRun(w http.ResponseWriter, r *http.Request) {
	fileName, err := s.backups.RunOnce(r.Context())
	if errors.Is(err, backup.ErrBackupRunning) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		log.Errorf("manual backup: %s", err)
		http.Error(w, "backup failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"file":%q}`, fileName))
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
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

	if s.backups != nil {
		if err := s.backups.Start(s.config.BackupSchedule); err != nil {
			log.Errorf("start backups: %s", err)
		}
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown stops accepting requests, writes the pending collection
// change and closes the backend.
func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.backups != nil {
		s.backups.Stop()
	}

	if err := s.workouts.Flush(ctx); err != nil {
		log.Errorf("flush workouts on shutdown: %s", err)
	} else {
		log.Debugln("workouts flushed")
	}

	s.backend.Close()
	if s.limiterRdb != nil {
		if err := s.limiterRdb.Close(); err != nil {
			log.Errorf("failed to close rate limiter redis conn: %s", err)
		}
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

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
