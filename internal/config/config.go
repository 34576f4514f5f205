package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP   HTTPConfig   `mapstructure:"http"`
	DB     DBConfig     `mapstructure:"db"`
	Log    LogConfig    `mapstructure:"log"`
	Import ImportConfig `mapstructure:"import"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Web    WebConfig    `mapstructure:"web"`
}

type HTTPConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowedorigins"`
}

// DBConfig keeps the DB_HOST / DB_USER / DB_PASSWORD / DB_NAME / DB_PORT
// environment names working through the env key replacer.
type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxBackups int    `mapstructure:"maxbackups"`
	MaxAge     int    `mapstructure:"maxage"`
}

type ImportConfig struct {
	Dir       string        `mapstructure:"dir"`
	Retention time.Duration `mapstructure:"retention"`
	PruneSpec string        `mapstructure:"prunespec"`
	BatchSize int           `mapstructure:"batchsize"`
}

// RedisConfig is optional. An empty Addr keeps import progress in memory.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WebConfig struct {
	Addr       string        `mapstructure:"addr"`
	APIBaseURL string        `mapstructure:"apibaseurl"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// FlagBinding maps a command line flag onto a config key.
type FlagBinding struct {
	Key  string
	Flag *pflag.Flag
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowedorigins", []string{"http://localhost:3000"})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "coursemanagement")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "course.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxsize", 100)
	v.SetDefault("log.maxbackups", 5)
	v.SetDefault("log.maxage", 30)

	v.SetDefault("import.dir", "uploads")
	v.SetDefault("import.retention", 24*time.Hour)
	v.SetDefault("import.prunespec", "@every 10m")
	v.SetDefault("import.batchsize", 1000)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("web.addr", ":3000")
	v.SetDefault("web.apibaseurl", "http://localhost:8080")
	v.SetDefault("web.timeout", 10*time.Second)
}

// Load reads .env, then the YAML file at path, then the environment, then the
// bound flags, each overriding the previous. A missing file is not an error.
func Load(path string, flags ...FlagBinding) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, fb := range flags {
		if fb.Flag == nil {
			continue
		}
		if err := v.BindPFlag(fb.Key, fb.Flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", fb.Key, err)
		}
	}

	if path != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
