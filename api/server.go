package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"auction/adapters/database"
	"auction/adapters/memory"
	redisAdapter "auction/adapters/redis"
	"auction/adapters/sse"
	"auction/bidding"
	"auction/listing"
)

// storage 是出價引擎與商品管理共用的儲存層
type storage interface {
	bidding.IRepository
	listing.ICatalog
}

type ServerImpl struct {
	engine      *bidding.Engine
	listing     *listing.Service
	repo        storage
	sseManager  sse.IConnectionManager[BidEvent]
	producer    redisAdapter.IProducer[sse.PublishRequest[BidEvent]]
	redisClient *redis.Client
	db          *gorm.DB
	logger      *slog.Logger
	keepAlive   time.Duration

	config ServerConfig
}

func NewServer(config ServerConfig) (*ServerImpl, error) {
	const op = "NewServer"

	var (
		repo storage
		db   *gorm.DB
	)
	switch config.Storage {
	case StorageMemory:
		repo = memory.NewRepository()
	case StoragePostgres, "":
		// 初始化資料庫連線
		var err error
		db, err = gorm.Open(postgres.Open(config.DB.DSN()), config.DB.GormConfig())
		if err != nil {
			return nil, fmt.Errorf("[%s] Fail to connect to database, err=%w", op, err)
		}
		if config.DB.AutoMigrate {
			if err := database.Migrate(db); err != nil {
				return nil, fmt.Errorf("[%s] Fail to migrate database, err=%w", op, err)
			}
		}
		repo = database.NewRepository(db)
	default:
		return nil, fmt.Errorf("[%s] Unknown storage, storage=%s", op, config.Storage)
	}

	// 初始化Redis連線，未設置時只在本實例內加鎖與推送事件
	var redisClient *redis.Client
	if config.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
	}

	impl, err := newServer(config, repo, redisClient)
	if err != nil {
		return nil, fmt.Errorf("[%s] %w", op, err)
	}
	impl.db = db
	return impl, nil
}

func newServer(config ServerConfig, repo storage, redisClient *redis.Client) (*ServerImpl, error) {
	const op = "newServer"
	logger := slog.Default().With(slog.String("instance", config.ID))

	engineOpts := []bidding.EngineOption{bidding.WithEngineLogger(logger)}
	if config.Bidding.LockTimeout > 0 {
		engineOpts = append(engineOpts, bidding.WithEngineLockTimeout(config.Bidding.LockTimeout))
	}
	managerOpts := []sse.ManagerOption[BidEvent]{sse.WithLogger[BidEvent](logger)}

	var producer redisAdapter.IProducer[sse.PublishRequest[BidEvent]]
	if redisClient != nil {
		// 商品鎖
		lockOpts := []redisAdapter.ProductLockerOption{redisAdapter.WithProductLockLogger(logger)}
		if config.Bidding.LockExpiry > 0 {
			lockOpts = append(lockOpts, redisAdapter.WithProductLockExpiry(config.Bidding.LockExpiry))
		}
		locker, err := redisAdapter.NewProductLocker(redisClient, config.Redis.KeyPrefix, lockOpts...)
		if err != nil {
			return nil, fmt.Errorf("[%s] Fail to create product locker, err=%w", op, err)
		}
		engineOpts = append(engineOpts, bidding.WithEngineLocker(locker))

		// 出價事件透過Redis Stream分享給所有實例
		stream := config.Redis.KeyPrefix + config.Redis.StreamKeys.BidEvents
		consumer, err := redisAdapter.NewConsumer(
			redisClient,
			stream,
			redisAdapter.WithConsumerLogger[sse.PublishRequest[BidEvent]](logger),
		)
		if err != nil {
			return nil, fmt.Errorf("[%s] Fail to create consumer, err=%w", op, err)
		}
		managerOpts = append(managerOpts, sse.WithSubscriber[BidEvent](consumer))

		p, err := redisAdapter.NewProducer(
			redisClient,
			stream,
			redisAdapter.WithProducerLogger[sse.PublishRequest[BidEvent]](logger),
		)
		if err != nil {
			return nil, fmt.Errorf("[%s] Fail to create producer, err=%w", op, err)
		}
		producer = p
	}

	engine, err := bidding.NewEngine(repo, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to create bidding engine, err=%w", op, err)
	}
	service, err := listing.NewService(repo, listing.WithServiceLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to create listing service, err=%w", op, err)
	}
	sseManager, err := sse.NewConnectionManager[BidEvent](managerOpts...)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to create sse connection manager, err=%w", op, err)
	}

	return &ServerImpl{
		engine:      engine,
		listing:     service,
		repo:        repo,
		sseManager:  sseManager,
		producer:    producer,
		redisClient: redisClient,
		logger:      logger.With(slog.String("caller", "Server")),
		keepAlive:   30 * time.Second,
		config:      config,
	}, nil
}

// Start 啟動背景工作，設定要求時建立種子資料
func (impl *ServerImpl) Start(ctx context.Context) error {
	const op = "Start"
	if impl.config.Seed {
		if err := impl.listing.Seed(ctx); err != nil {
			return fmt.Errorf("[%s] Fail to seed data, err=%w", op, err)
		}
	}
	// 啟動producer
	if impl.producer != nil {
		impl.producer.Start()
	}
	// 啟動sse connection manager
	impl.sseManager.Start()
	return nil
}

func (impl *ServerImpl) Close() {
	// 關閉producer，送出緩衝中的事件
	if impl.producer != nil {
		impl.producer.Close()
	}
	// 關閉sse connection manager
	impl.sseManager.Done()
	if impl.redisClient != nil {
		if err := impl.redisClient.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			impl.logger.Warn("Fail to close redis client", slog.Any("error", err))
		}
	}
	if impl.db != nil {
		if sqlDB, err := impl.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// RegisterRoutes 註冊所有路由
func (impl *ServerImpl) RegisterRoutes(router gin.IRouter) {
	router.GET("/healthz", impl.GetHealthz)

	products := router.Group("/products", impl.Authenticate())
	products.GET("", impl.GetProducts)
	products.POST("", impl.PostProducts)
	products.GET("/:productID", impl.GetProduct)
	products.PUT("/:productID", impl.PutProduct)
	products.DELETE("/:productID", impl.DeleteProduct)
	products.PUT("/:productID/published", impl.PutProductPublished)
	products.GET("/:productID/bids", impl.GetProductBids)
	products.POST("/:productID/bids", impl.PostProductBids)
	products.DELETE("/:productID/bids", impl.DeleteProductBids)
	products.POST("/:productID/bids/validate", impl.PostProductBidsValidate)
	products.GET("/:productID/events", impl.GetProductEvents)
}

// Health check
// (GET /healthz)
func (impl *ServerImpl) GetHealthz(c *gin.Context) {
	if impl.redisClient != nil {
		if err := impl.redisClient.Ping(c.Request.Context()).Err(); err != nil {
			impl.logger.Warn("Redis is unavailable", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
			return
		}
	}
	if impl.db != nil {
		sqlDB, err := impl.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			impl.logger.Warn("Database is unavailable", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RequestLogger 以 slog 記錄每個請求
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With(slog.String("caller", "HTTP"))
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c, level, "Request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("clientIP", c.ClientIP()))
	}
}
