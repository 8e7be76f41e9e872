package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Storage    StorageConfig    `mapstructure:"storage"`
	OSS        OSSConfig        `mapstructure:"oss"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // mysql, sqlite
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Driver  string `mapstructure:"driver"`   // local, oss
	BaseDir string `mapstructure:"base_dir"` // local 驱动的根目录
	BaseURL string `mapstructure:"base_url"` // local 驱动对外访问前缀
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	CDNDomain       string `mapstructure:"cdn_domain"`
}

type ModerationConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	AppID          string `mapstructure:"app_id"`
	APIKey         string `mapstructure:"api_key"`
	APISecret      string `mapstructure:"api_secret"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type UploadConfig struct {
	MaxSize           int64    `mapstructure:"max_size"`           // 最大文件大小（字节）
	AvatarMaxSize     int64    `mapstructure:"avatar_max_size"`    // 头像最大大小（字节）
	ThumbnailWidth    uint     `mapstructure:"thumbnail_width"`    // 缩略图宽度
	AllowedExtensions []string `mapstructure:"allowed_extensions"` // 允许的扩展名
}

type CacheConfig struct {
	HotTTLSeconds int `mapstructure:"hot_ttl_seconds"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text, json
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	// 环境变量覆盖
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("jwt.expire_hours", 168)
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.base_dir", "static")
	v.SetDefault("storage.base_url", "http://127.0.0.1:5000/static")
	v.SetDefault("moderation.endpoint", "https://audit.iflyaisol.com/audit/v2/image")
	v.SetDefault("moderation.timeout_seconds", 10)
	v.SetDefault("upload.max_size", 20*1024*1024)
	v.SetDefault("upload.avatar_max_size", 5*1024*1024)
	v.SetDefault("upload.thumbnail_width", 480)
	v.SetDefault("upload.allowed_extensions", []string{".png", ".jpg", ".jpeg", ".gif", ".webp"})
	v.SetDefault("cache.hot_ttl_seconds", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
