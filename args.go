package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"auction/api"
)

func ParseArgs() (Args, error) {
	// .env 不存在時直接使用環境變數
	_ = godotenv.Load()

	// server config
	pflag.String("server-url", "0.0.0.0:8080", "")
	pflag.String("instance-id", "", "")
	pflag.String("log-level", "info", "")
	pflag.String("storage", api.StoragePostgres, "postgres or memory")
	pflag.Bool("seed", false, "create seed users and products")

	// auth config
	pflag.String("auth-public-key-file", "", "PEM encoded Ed25519 public key for access tokens")

	// db config
	pflag.String("db-user", "", "")
	pflag.String("db-password", "", "")
	pflag.String("db-host", "", "")
	pflag.Int("db-port", 5432, "")
	pflag.String("db-database", "", "")
	pflag.String("db-schema", "", "")
	pflag.Bool("db-auto-migrate", false, "")

	// redis config
	pflag.String("redis-addr", "", "")
	pflag.String("redis-password", "", "")
	pflag.Int("redis-db", 15, "")
	pflag.String("redis-key-prefix", "auction:", "")

	// redis stream keys
	pflag.String("redis-stream-key-for-bid-events", "bid-events", "")

	// bidding config
	pflag.Duration("lock-expiry", 0, "")
	pflag.Duration("lock-timeout", 0, "")

	// bind pflag to viper
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("AUCTION")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		return Args{}, fmt.Errorf("invalid log level: %w", err)
	}

	auth := api.AuthConfig{}
	if path := viper.GetString("auth-public-key-file"); path != "" {
		pem, err := os.ReadFile(path)
		if err != nil {
			return Args{}, fmt.Errorf("fail to read public key file: %w", err)
		}
		key, err := jwt.ParseEdPublicKeyFromPEM(pem)
		if err != nil {
			return Args{}, fmt.Errorf("fail to parse public key: %w", err)
		}
		if err := auth.SetPublicKey(key); err != nil {
			return Args{}, err
		}
	}

	// initial arguments
	return Args{
		ServerURL: viper.GetString("server-url"),
		LogLevel:  level,
		ServerConfig: api.ServerConfig{
			ID:      viper.GetString("instance-id"),
			Storage: viper.GetString("storage"),
			Seed:    viper.GetBool("seed"),
			DB: api.DBConfig{
				User:        viper.GetString("db-user"),
				Password:    viper.GetString("db-password"),
				Host:        viper.GetString("db-host"),
				Port:        viper.GetInt("db-port"),
				Database:    viper.GetString("db-database"),
				Schema:      viper.GetString("db-schema"),
				AutoMigrate: viper.GetBool("db-auto-migrate"),
			},
			Redis: api.RedisConfig{
				Addr:      viper.GetString("redis-addr"),
				Password:  viper.GetString("redis-password"),
				DB:        viper.GetInt("redis-db"),
				KeyPrefix: viper.GetString("redis-key-prefix"),
				StreamKeys: api.RedisStreamKeys{
					BidEvents: viper.GetString("redis-stream-key-for-bid-events"),
				},
			},
			Auth: auth,
			Bidding: api.BiddingConfig{
				LockExpiry:  viper.GetDuration("lock-expiry"),
				LockTimeout: viper.GetDuration("lock-timeout"),
			},
		},
	}, nil
}

type Args struct {
	ServerURL    string
	LogLevel     slog.Level
	ServerConfig api.ServerConfig
}

func (args Args) Validate() error {
	var errs []error
	if args.ServerURL == "" {
		errs = append(errs, errors.New("server-url is required"))
	}
	if len(args.ServerConfig.Auth.PublicKey) == 0 {
		errs = append(errs, errors.New("auth-public-key-file is required"))
	}
	switch args.ServerConfig.Storage {
	case api.StorageMemory:
	case api.StoragePostgres:
		if args.ServerConfig.DB.Host == "" || args.ServerConfig.DB.Database == "" || args.ServerConfig.DB.User == "" {
			errs = append(errs, errors.New("db-host, db-database and db-user are required for postgres storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q", args.ServerConfig.Storage))
	}
	if args.ServerConfig.Redis.Addr != "" && args.ServerConfig.Redis.StreamKeys.BidEvents == "" {
		errs = append(errs, errors.New("redis-stream-key-for-bid-events is required when redis is enabled"))
	}
	return errors.Join(errs...)
}
