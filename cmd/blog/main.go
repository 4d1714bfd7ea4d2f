package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	myPostgresRepo "github.com/Miraines/MoonyAndStarry/blog-service/internal/adapters/db/postgres"
	myRedisRepo "github.com/Miraines/MoonyAndStarry/blog-service/internal/adapters/db/redis"
	myGrpc "github.com/Miraines/MoonyAndStarry/blog-service/internal/adapters/transport/grpc"
	myHttp "github.com/Miraines/MoonyAndStarry/blog-service/internal/adapters/transport/http"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/app/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/app/auth/password"
	authsvc "github.com/Miraines/MoonyAndStarry/blog-service/internal/app/auth/service"
	blogsvc "github.com/Miraines/MoonyAndStarry/blog-service/internal/app/blog/service"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/repo"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/infra/config"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/infra/db"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/infra/health"
	lg "github.com/Miraines/MoonyAndStarry/blog-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/infra/server"
	"golang.org/x/sync/errgroup"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// no config yet, so only the process env can pick the level
		lg.Must(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")).
			Fatal("failed to load config", zap.Error(err))
	}

	zapLog := lg.Must(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zapLog.Sync() }()
	gin.SetMode(cfg.GinMode)

	gormDB, err := db.Open(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("failed to open database", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()

	var (
		redisCli *redis.Client
		cache    repo.ArticleCache = myRedisRepo.NopArticleCache{}
	)
	if cfg.RedisAddress != "" {
		redisCli = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisCli.Close()
		cache = myRedisRepo.NewRedisArticleCache(redisCli, cfg.ArticleCacheTTL)
		zapLog.Info("article cache enabled", zap.String("redis", cfg.RedisAddress))
	}

	jwtUtil, err := jwt.NewJWTUtil(cfg)
	if err != nil {
		zapLog.Fatal("failed to init JWT util", zap.Error(err))
	}
	hasher := password.NewHasher(cfg.PasswordPepper, zapLog)
	validate := validator.New()

	userRepo := myPostgresRepo.NewPostgresUserRepo(gormDB)
	authService := authsvc.New(userRepo, jwtUtil, hasher, validate)
	blogService := blogsvc.New(
		userRepo,
		myPostgresRepo.NewPostgresArticleRepo(gormDB),
		myPostgresRepo.NewPostgresCommentRepo(gormDB),
		cache,
		validate,
		zapLog,
	)

	checker := health.NewChecker(gormDB, redisCli)
	handler := myHttp.NewHandler(authService, blogService, checker, zapLog)
	router := myHttp.NewRouter(handler, myHttp.RouterConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: cfg.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	rootCtx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(rootCtx)

	if cfg.GRPCAddress != "" {
		reporter := myGrpc.NewHealthReporter(checker, 10*time.Second, zapLog)
		g.Go(func() error {
			return server.StartGRPCServer(ctx, cfg, reporter, zapLog)
		})
	}

	g.Go(func() error {
		zapLog.Info("HTTP server listening",
			zap.String("addr", cfg.HTTPAddress),
			zap.Bool("tls", cfg.TLSEnabled()),
		)
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.HTTPSCertFile, cfg.HTTPSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		zapLog.Info("shutdown signal received")
	case <-ctx.Done():
		zapLog.Warn("server exited, shutting down")
	}
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
