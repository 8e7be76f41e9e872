package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/qs3c/wallpaper_server/config"
	"github.com/qs3c/wallpaper_server/internal/api"
	"github.com/qs3c/wallpaper_server/internal/api/handler"
	"github.com/qs3c/wallpaper_server/internal/database"
	"github.com/qs3c/wallpaper_server/internal/pkg/cache"
	"github.com/qs3c/wallpaper_server/internal/pkg/logger"
	"github.com/qs3c/wallpaper_server/internal/pkg/moderation"
	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
	"github.com/qs3c/wallpaper_server/internal/repository"
	"github.com/qs3c/wallpaper_server/internal/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[server] failed to load config: %v", err)
	}
	logger.Setup(cfg.Log)

	// 初始化数据库
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("[server] failed to connect database: %v", err)
	}
	log.Infof("[server] database connected (%s)", cfg.Database.Driver)

	// 初始化 Redis，未配置时热门列表不走缓存
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("[server] failed to connect redis: %v", err)
	}
	if rdb != nil {
		log.Info("[server] redis connected")
	} else {
		log.Warn("[server] redis not configured, hot lists are uncached")
	}
	hotCache := cache.New(rdb, "wallpaper")
	hotTTL := time.Duration(cfg.Cache.HotTTLSeconds) * time.Second

	// 初始化存储
	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("[server] failed to init storage: %v", err)
	}
	log.Infof("[server] storage driver: %s", cfg.Storage.Driver)

	moderator := moderation.NewClient(&cfg.Moderation)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	wallpaperRepo := repository.NewWallpaperRepository(db)
	tagRepo := repository.NewTagRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	topicRepo := repository.NewTopicRepository(db)

	// 初始化 Service
	userService := service.NewUserService(db, userRepo, followRepo, postRepo, wallpaperRepo, store, cfg)
	authService := service.NewAuthService(userRepo, userService, cfg)
	uploadService := service.NewUploadService(store, cfg)
	wallpaperService := service.NewWallpaperService(db, wallpaperRepo, tagRepo, userRepo, store, moderator, hotCache, hotTTL)
	tagService := service.NewTagService(tagRepo)
	commentService := service.NewCommentService(db, commentRepo, postRepo)
	postService := service.NewPostService(db, postRepo, topicRepo, commentService, commentService)
	topicService := service.NewTopicService(topicRepo, postRepo, postService, hotCache, hotTTL)
	qrcodeService := service.NewQRCodeService(store)

	// 初始化 Router
	router := api.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService, wallpaperService),
		handler.NewWallpaperHandler(wallpaperService, uploadService),
		handler.NewTagHandler(tagService),
		handler.NewPostHandler(postService),
		handler.NewCommentHandler(commentService),
		handler.NewTopicHandler(topicService),
		handler.NewQRCodeHandler(qrcodeService),
		userService.IsAdmin,
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router.Setup(),
	}

	go func() {
		log.Infof("[server] starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] failed to start: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("[server] HTTP server shutdown error: %v", err)
	} else {
		log.Info("[server] HTTP server shut down gracefully")
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Warnf("[server] close redis: %v", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("[server] disconnected from DB")
}
