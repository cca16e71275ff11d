package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/payroll-engine/internal/handler/http"
	"github.com/cmlabs-hris/payroll-engine/internal/messaging/kafka"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	cacheRepo "github.com/cmlabs-hris/payroll-engine/internal/repository/cache"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	payrollService "github.com/cmlabs-hris/payroll-engine/internal/service/payroll"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := appHTTP.NewLogger(cfg.App.Env, level)
	slog.SetDefault(logger)

	zapLogger, err := newZapLogger(cfg.App.Env)
	if err != nil {
		logger.Error("failed to build audit logger", "error", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	txManager := postgresql.NewTxManager(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	masterRepo := postgresql.NewMasterRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	var masterCache payroll.MasterCacheInvalidator
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()

		mc := cacheRepo.NewMasterCache(cache.NewRedisCache(rdb, "payroll:", cfg.Redis.TTL))
		masterRepo = mc.WrapMasters(masterRepo)
		scheduleRepo = mc.WrapSchedule(scheduleRepo)
		masterCache = mc
		logger.Info("master data cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	var outboxRepo kafka.OutboxRepository
	if len(cfg.Kafka.Brokers) > 0 {
		outboxRepo = postgresql.NewOutboxRepository(db)
		logger.Info("payroll events enabled", "topic", cfg.Kafka.ConfirmedTopic)
	}

	activityLog := audit.Multi(
		postgresql.NewActivityLogRepository(db),
		audit.NewZapLogger(zapLogger),
	)

	payrollSvc := payrollService.NewPayrollService(
		txManager,
		employeeRepo,
		attendanceRepo,
		leaveRepo,
		scheduleRepo,
		masterRepo,
		adjustmentRepo,
		payrollRepo,
		outboxRepo,
		activityLog,
		masterCache,
		payrollService.Options{
			Workers:        cfg.Payroll.Workers,
			ChunkSize:      cfg.Payroll.ChunkSize,
			ConfirmedTopic: cfg.Kafka.ConfirmedTopic,
		},
	)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{AllowedOrigins: cfg.App.AllowedOrigins, Logger: logger},
		JWTService,
		payrollHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func newZapLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
