package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int     `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec   int     `mapstructure:"write_timeout_sec"`
	IdleTimeoutSec    int     `mapstructure:"idle_timeout_sec"`
	RequestTimeoutSec int     `mapstructure:"request_timeout_sec"`
	RateLimitRPS      float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst    int     `mapstructure:"rate_limit_burst"`
	RateLimitPerIP    bool    `mapstructure:"rate_limit_per_ip"` // true: 每个客户端 IP 一个令牌桶
	MaxInFlight       int64   `mapstructure:"max_in_flight"`
	MaxBodyBytes      int64   `mapstructure:"max_body_bytes"`
}

type AdminHTTP struct {
	Host string
	Port int
	Key  string // X-Admin-Key；为空时拒绝所有管理请求
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int    `mapstructure:"conn_max_lifetime_min"`
	LogLevel           string `mapstructure:"log_level"`
}

// Storage 集合存储后端：file | redis | sql
type Storage struct {
	Driver      string
	Dir         string
	RedisPrefix string `mapstructure:"redis_prefix"`
}

type Seed struct {
	Enabled  bool
	Patients int
}

type Config struct {
	App     App
	Log     Log
	Storage Storage
	Seed    Seed
	DB      DB
	Redis   Redis `mapstructure:"redis"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "medical-records-api")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 3000)
	v.SetDefault("app.http.read_timeout_sec", 5)
	v.SetDefault("app.http.write_timeout_sec", 10)
	v.SetDefault("app.http.idle_timeout_sec", 60)
	v.SetDefault("app.http.request_timeout_sec", 10)
	v.SetDefault("app.http.rate_limit_rps", 200)
	v.SetDefault("app.http.rate_limit_burst", 400)
	v.SetDefault("app.http.rate_limit_per_ip", false)
	v.SetDefault("app.http.max_in_flight", 300)
	v.SetDefault("app.http.max_body_bytes", 1<<20)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 3001)
	v.SetDefault("app.admin.key", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.max_size_mb", 100)
	v.SetDefault("log.file.max_backups", 7)
	v.SetDefault("log.file.max_age_days", 30)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.dir", "./db")
	v.SetDefault("storage.redis_prefix", "medrec:")

	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.patients", 10)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime_min", 30)
	v.SetDefault("db.log_level", "warn")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}

// Load 读取 YAML 配置；文件不存在时只用默认值 + APP_* 环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "file", "redis", "sql":
	default:
		return fmt.Errorf("config: unsupported storage.driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "file" && c.Storage.Dir == "" {
		return errors.New("config: storage.dir is required for the file driver")
	}
	if c.Storage.Driver == "sql" && c.DB.DSN == "" {
		return errors.New("config: db.dsn is required for the sql driver")
	}
	return nil
}
