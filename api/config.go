package api

import (
	"crypto"
	"crypto/ed25519"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type ServerConfig struct {
	// ID 是服務實例的識別名稱，用於日誌
	ID      string
	Storage string
	Seed    bool

	DB      DBConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Bidding BiddingConfig
}

type DBConfig struct {
	User        string
	Password    string
	Host        string
	Port        int
	Database    string
	Schema      string
	AutoMigrate bool
}

// DSN 組出 postgres 連線字串，未指定 schema 時使用資料庫預設的 search_path
func (c DBConfig) DSN() string {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", c.User, c.Password, c.Host, c.Port, c.Database)
	if c.Schema != "" {
		dsn += "&search_path=" + c.Schema
	}
	return dsn
}

// GormConfig 返回 gorm 設定，只有指定 schema 時才為資料表加上前綴
func (c DBConfig) GormConfig() *gorm.Config {
	config := &gorm.Config{TranslateError: true}
	if c.Schema != "" {
		config.NamingStrategy = schema.NamingStrategy{TablePrefix: c.Schema + "."}
	}
	return config
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string

	StreamKeys RedisStreamKeys
}

type RedisStreamKeys struct {
	BidEvents string
}

type AuthConfig struct {
	// PublicKey 用於驗證外部認證服務簽發的 EdDSA JWT
	PublicKey ed25519.PublicKey
}

type BiddingConfig struct {
	LockExpiry  time.Duration
	LockTimeout time.Duration
}

// SetPublicKey 設置驗證 access token 的公鑰，只接受 Ed25519
func (c *AuthConfig) SetPublicKey(key crypto.PublicKey) error {
	edKey, ok := key.(ed25519.PublicKey)
	if !ok {
		return fmt.Errorf("unsupported public key type %T", key)
	}
	c.PublicKey = edKey
	return nil
}
