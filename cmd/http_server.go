package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/auth"
	authPostgres "github.com/frahmantamala/employee-management/internal/auth/postgres"
	"github.com/frahmantamala/employee-management/internal/core/common/pagination"
	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/frahmantamala/employee-management/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-management/internal/employee/postgres"
	"github.com/frahmantamala/employee-management/internal/metrics"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/frahmantamala/employee-management/internal/transport/rest"
	"github.com/frahmantamala/employee-management/internal/transport/swagger"
	"github.com/frahmantamala/employee-management/internal/user"
	userPostgres "github.com/frahmantamala/employee-management/internal/user/postgres"
	"github.com/frahmantamala/employee-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const sqlDriver = "pgx"

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	GormDB   *gorm.DB
	DB       *sqlx.DB
	EventBus *events.EventBus
	Metrics  *metrics.Metrics
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.EventBus.Wait()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	base := transport.NewBaseHandler(deps.Logger)

	tokenGen := auth.NewJWTTokenGenerator(deps.Config.Security)
	authService := auth.NewService(authPostgres.NewRepository(deps.GormDB), tokenGen, deps.Logger)
	userService := user.NewService(userPostgres.NewPostgresRepo(deps.DB))
	employeeService := employee.NewService(
		employeePostgres.NewEmployeeRepository(deps.GormDB),
		deps.Logger,
		employee.WithEventPublisher(deps.EventBus),
	)
	paginator := pagination.NewPaginator(deps.Config.Pagination.DefaultPageSize, deps.Config.Pagination.MaxPageSize)

	rest.RegisterAllRoutes(deps.Router, rest.Routes{
		DB:          deps.DB,
		Auth:        auth.NewHandler(base, authService),
		User:        user.NewHandler(base, userService),
		Employee:    employee.NewHandler(base, employeeService, paginator),
		Metrics:     deps.Metrics,
		MetricsPath: deps.Config.Observability.Metrics.Path,
	}, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Configure(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	if _, err := swagger.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	gormDB, db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := events.NewEventBus(lg)
	events.SubscribeAudit(bus, lg)

	var m *metrics.Metrics
	if config.Observability.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewDBStatsCollector(db.DB, "employees"),
		)
		m = metrics.NewMetrics(reg)
		m.SubscribeEmployeeEvents(bus)
	}

	return &Dependencies{
		Config:   config,
		GormDB:   gormDB,
		DB:       db,
		EventBus: bus,
		Metrics:  m,
		Router:   chi.NewRouter(),
		Logger:   lg,
	}, nil
}

// initDB opens one pool and shares it between gorm and sqlx.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sqlx.DB, error) {
	sqlDB, err := sql.Open(sqlDriver, cfg.GetDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return gormDB, sqlx.NewDb(sqlDB, sqlDriver), nil
}
