package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/qs3c/wallpaper_server/config"
	"github.com/qs3c/wallpaper_server/internal/database"
	"github.com/qs3c/wallpaper_server/internal/pkg/logger"
	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
	"github.com/qs3c/wallpaper_server/internal/service"
)

var (
	dryRun       = flag.Bool("dry-run", true, "Dry run mode, don't actually delete files")
	orphanAge    = flag.Int("orphan-age", 24, "Hours an unreferenced upload is kept before it counts as orphaned")
	qrcodeExpire = flag.Int("qrcode-expire", 7, "Days to keep generated QR codes")
	cleanOrphans = flag.Bool("clean-orphans", true, "Clean uploads not referenced by any wallpaper, user or post")
	cleanQRCodes = flag.Bool("clean-qrcodes", true, "Clean expired QR codes")
)

func main() {
	flag.Parse()

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[cleanup] failed to load config: %v", err)
	}
	logger.Setup(cfg.Log)

	if cfg.Storage.Driver != "" && cfg.Storage.Driver != storage.DriverLocal {
		log.Fatalf("[cleanup] only the local storage driver can be cleaned, got %q", cfg.Storage.Driver)
	}

	// 清理脚本不做迁移
	dbCfg := cfg.Database
	dbCfg.AutoMigrate = false
	db, err := database.NewDB(&dbCfg)
	if err != nil {
		log.Fatalf("[cleanup] failed to connect to database: %v", err)
	}

	store := storage.NewDiskStorage(cfg.Storage.BaseDir, cfg.Storage.BaseURL)
	svc := service.NewCleanupService(db, store)

	log.Infof("[cleanup] starting, dry-run=%v", *dryRun)

	var (
		deletedFiles int
		deletedSize  int64
	)

	// 1. 上传后从未保存或已被替换的文件
	if *cleanOrphans {
		orphans, err := svc.FindOrphans(time.Duration(*orphanAge) * time.Hour)
		if err != nil {
			log.Fatalf("[cleanup] failed to find orphaned uploads: %v", err)
		}
		log.Infof("[cleanup] found %d orphaned uploads older than %d hours", len(orphans), *orphanAge)
		n, size := process(svc, orphans)
		deletedFiles += n
		deletedSize += size
	}

	// 2. 过期二维码
	if *cleanQRCodes {
		expired, err := svc.FindExpiredQRCodes(time.Duration(*qrcodeExpire) * 24 * time.Hour)
		if err != nil {
			log.Fatalf("[cleanup] failed to scan qr codes: %v", err)
		}
		log.Infof("[cleanup] found %d qr codes older than %d days", len(expired), *qrcodeExpire)
		n, size := process(svc, expired)
		deletedFiles += n
		deletedSize += size
	}

	totalFiles, totalSize := svc.DiskUsage()

	log.Info(strings.Repeat("=", 60))
	log.Infof("Total files: %d", totalFiles)
	log.Infof("Total size: %s", formatSize(totalSize))
	log.Infof("Deleted files: %d", deletedFiles)
	log.Infof("Freed space: %s", formatSize(deletedSize))
	if *dryRun {
		log.Info("DRY RUN MODE - no files were deleted, run with -dry-run=false to delete")
	}
	log.Info(strings.Repeat("=", 60))
}

// process 列出文件，非 dry-run 时删除
func process(svc *service.CleanupService, files []service.StaleFile) (int, int64) {
	var size int64
	for _, f := range files {
		size += f.Size
		log.Infof("  - %s (%s, %s old)", f.Key, formatSize(f.Size), time.Since(f.ModTime).Round(time.Hour))
	}
	if *dryRun {
		return len(files), size
	}
	return svc.Remove(files)
}

// formatSize 格式化文件大小
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
