package logger

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/qs3c/wallpaper_server/config"
)

// Setup 按配置设置全局 logrus 的级别与格式
func Setup(cfg config.LogConfig) {
	log.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("[logger] unknown level %q, falling back to info", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
