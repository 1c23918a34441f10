package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Bidding   BiddingConfig   `mapstructure:"bidding"`
	Broadcast BroadcastConfig `mapstructure:"broadcast"`
	Sweep     SweepConfig     `mapstructure:"sweep"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
	// AllowedOrigins are host patterns allowed to open lot websockets cross-origin
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DBConfig selects Postgres when DSN is set; otherwise the in-memory store is used
type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// RedisConfig enables the shared broadcast layer and outbox when Addr is set
type RedisConfig struct {
	Addr          string `mapstructure:"addr"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	ChannelPrefix string `mapstructure:"channel_prefix"`
	OutboxKey     string `mapstructure:"outbox_key"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type BiddingConfig struct {
	ExtensionWindow time.Duration `mapstructure:"extension_window"`
	MaxExtension    time.Duration `mapstructure:"max_extension"`
	FirstBidDelay   time.Duration `mapstructure:"first_bid_delay"`
	ChatGrace       time.Duration `mapstructure:"chat_grace"`
}

type BroadcastConfig struct {
	ReplayLimit  int `mapstructure:"replay_limit"`
	ClientBuffer int `mapstructure:"client_buffer"`
}

type SweepConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Schedule  string `mapstructure:"schedule"`
	BatchSize int    `mapstructure:"batch_size"`
}

// Load reads the optional YAML file at path and overlays LOT_* environment
// variables, e.g. LOT_REDIS_ADDR for redis.addr.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel_prefix", "lot")
	v.SetDefault("redis.outbox_key", "notifications:outbid")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("bidding.extension_window", "15m")
	v.SetDefault("bidding.max_extension", "60m")
	v.SetDefault("bidding.first_bid_delay", "20m")
	v.SetDefault("bidding.chat_grace", "60m")
	v.SetDefault("broadcast.replay_limit", 200)
	v.SetDefault("broadcast.client_buffer", 64)
	v.SetDefault("sweep.enabled", true)
	v.SetDefault("sweep.schedule", "@every 1m")
	v.SetDefault("sweep.batch_size", 100)

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
