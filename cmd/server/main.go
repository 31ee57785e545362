package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "clubportal/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"clubportal/internal/activity"
	"clubportal/internal/auth"
	"clubportal/internal/backup"
	"clubportal/internal/cache"
	"clubportal/internal/config"
	"clubportal/internal/csvstore"
	"clubportal/internal/db"
	"clubportal/internal/handler"
	"clubportal/internal/logger"
	"clubportal/internal/repository"
	"clubportal/internal/router"
	"clubportal/internal/service"
	"clubportal/internal/storage"
)

const tokenPurgeInterval = time.Hour

// @title Club Portal API
// @version 1.0
// @description School club portal: clubs, board, chat, votes, attendance, assignments, quizzes, schedule, points, portfolios and search.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.Setup(os.Stdout, cfg.Log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	storeOpts := []csvstore.Option{csvstore.WithLogger(log)}
	if cfg.RedisAddr != "" {
		storeOpts = append(storeOpts, csvstore.WithLocker(cache.NewTableLocker(cacheClient, cfg.LockLease)))
	}
	store := csvstore.New(cfg.DataDir, storeOpts...)
	if err := store.EnsureTables(ctx); err != nil {
		return err
	}

	// Activity log goes to MySQL when configured, otherwise to its CSV table.
	logRepo := repository.NewActivityLogRepository(store)
	if cfg.MySQLDSN != "" {
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return err
		}
		logRepo = repository.NewGormActivityLogRepository(gormDB)
	}
	activityLog := activity.NewLogger(logRepo, log)
	defer activityLog.Close()
	store.SetSink(activityLog)

	var tokenStore auth.TokenStoreInterface
	var boltTokens *auth.BoltTokenStore
	if cfg.RedisAddr != "" {
		tokenStore = auth.NewTokenStore(cacheClient)
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.TokenDBPath), 0o755); err != nil {
			return err
		}
		var err error
		boltTokens, err = auth.OpenBoltTokenStore(cfg.TokenDBPath)
		if err != nil {
			return err
		}
		defer boltTokens.Close()
		tokenStore = boltTokens
	}

	var uploader backup.Uploader
	if cfg.B2.Enabled() {
		b2, err := storage.NewB2(ctx, cfg.B2.KeyID, cfg.B2.AppKey, cfg.B2.Bucket)
		if err != nil {
			return err
		}
		uploader = b2
	}
	backups := backup.NewManager(store, cfg.BackupDir, uploader)

	// Initialize repositories
	tables := repository.NewTables(store)
	userRepo := repository.NewUserRepository(store, cacheClient)
	clubRepo := repository.NewClubRepository(store)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	notifications := service.NewNotificationService(tables, userRepo, nil)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, activityLog)

	h := router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(service.NewUserService(userRepo)),
		Seed:         handler.NewSeedHandler(clubRepo, userRepo),
		Club:         handler.NewClubHandler(service.NewClubService(clubRepo, userRepo)),
		Board:        handler.NewBoardHandler(service.NewBoardService(tables, notifications)),
		Chat:         handler.NewChatHandler(service.NewChatService(tables, nil)),
		Notification: handler.NewNotificationHandler(notifications),
		Vote:         handler.NewVoteHandler(service.NewVoteService(tables, notifications, nil)),
		Attendance:   handler.NewAttendanceHandler(service.NewAttendanceService(tables, userRepo, nil)),
		Assignment:   handler.NewAssignmentHandler(service.NewAssignmentService(tables, notifications, nil)),
		Quiz:         handler.NewQuizHandler(service.NewQuizService(tables, nil)),
		Schedule:     handler.NewScheduleHandler(service.NewScheduleService(tables, notifications)),
		Gamification: handler.NewGamificationHandler(service.NewGamificationService(tables, userRepo, nil)),
		Portfolio:    handler.NewPortfolioHandler(service.NewPortfolioService(tables, userRepo, nil)),
		Search:       handler.NewSearchHandler(service.NewSearchService(tables, userRepo, activityLog, nil)),
		Backup:       handler.NewBackupHandler(service.NewBackupService(backups, userRepo, activityLog)),
		Admin:        handler.NewAdminHandler(service.NewAdminService(tables, userRepo, clubRepo, activityLog, nil)),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, cfg, log, jwtService, tokenStore, userRepo, h)

	log.Info("swagger documentation available", slog.String("url", swaggerURL(cfg)))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.ServerPort
		log.Info("listening", slog.String("addr", addr), slog.String("data_dir", cfg.DataDir))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	if boltTokens != nil {
		g.Go(func() error {
			purgeTokens(ctx, boltTokens, log)
			return nil
		})
	}
	return g.Wait()
}

// purgeTokens drops expired refresh tokens and blacklist entries until ctx ends.
func purgeTokens(ctx context.Context, tokens *auth.BoltTokenStore, log *slog.Logger) {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := tokens.Purge(ctx)
			if err != nil {
				log.Warn("purge tokens", slog.Any("err", err))
				continue
			}
			if n > 0 {
				log.Debug("purged expired tokens", slog.Int("count", n))
			}
		}
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
