package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type productLockOptions struct {
	logger        *slog.Logger
	expiry        time.Duration
	retryDelay    time.Duration
	renewInterval time.Duration
}

type ProductLockerOption func(*productLockOptions)

// WithProductLockLogger 設置日誌記錄器
func WithProductLockLogger(logger *slog.Logger) ProductLockerOption {
	return func(o *productLockOptions) {
		o.logger = logger
	}
}

// WithProductLockExpiry 設置鎖過期時間
func WithProductLockExpiry(d time.Duration) ProductLockerOption {
	return func(o *productLockOptions) {
		o.expiry = d
	}
}

// WithProductLockRetryDelay 設置鎖被占用時的重試間隔
func WithProductLockRetryDelay(d time.Duration) ProductLockerOption {
	return func(o *productLockOptions) {
		o.retryDelay = d
	}
}

// WithProductLockRenewInterval 設置自動續期間隔，預設為過期時間的 1/3
func WithProductLockRenewInterval(d time.Duration) ProductLockerOption {
	return func(o *productLockOptions) {
		o.renewInterval = d
	}
}

// ProductLocker 為每個商品提供一把自動續期的分散式鎖，讓同一商品的出價與取消出價在所有服務實例間序列化
type ProductLocker struct {
	rs        *redsync.Redsync
	keyPrefix string
	logger    *slog.Logger
	options   productLockOptions
}

func NewProductLocker(client *redis.Client, keyPrefix string, opts ...ProductLockerOption) (*ProductLocker, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// 默認選項
	options := productLockOptions{
		logger:     slog.Default(),
		expiry:     8 * time.Second,
		retryDelay: 100 * time.Millisecond,
	}

	// 應用自定義選項
	for _, opt := range opts {
		opt(&options)
	}
	if options.expiry <= 0 {
		return nil, errors.New("lock expiry must be positive")
	}
	if options.renewInterval <= 0 {
		options.renewInterval = options.expiry / 3
	}

	return &ProductLocker{
		rs:        redsync.New(goredis.NewPool(client)),
		keyPrefix: keyPrefix,
		logger:    options.logger.With(slog.String("caller", "ProductLocker")),
		options:   options,
	}, nil
}

// Key 回傳商品鎖在 Redis 上的鍵值
func (l *ProductLocker) Key(productID uuid.UUID) string {
	return fmt.Sprintf("%sproduct:%s:lock", l.keyPrefix, productID)
}

// NewMutex 建立商品的互斥鎖，每次加鎖都應使用新的實例
func (l *ProductLocker) NewMutex(productID uuid.UUID) IProductMutex {
	key := l.Key(productID)
	return &ProductMutex{
		mutex: l.rs.NewMutex(
			key,
			redsync.WithExpiry(l.options.expiry),
			redsync.WithTries(1),
		),
		key:     key,
		options: l.options,
	}
}

// Lock 等待並取得商品的鎖，返回的 context 會在解鎖或續期失敗時被取消
func (l *ProductLocker) Lock(ctx context.Context, productID uuid.UUID) (context.Context, func(), error) {
	const op = "Lock"
	m := l.NewMutex(productID)
	lockCtx, err := m.Lock(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("[%s] Fail to acquire product lock, key=%s, err=%w", op, l.Key(productID), err)
	}
	unlock := func() {
		if ok, err := m.Unlock(); err != nil || !ok {
			l.logger.Warn("Fail to release product lock",
				slog.String("key", l.Key(productID)),
				slog.Any("error", err))
		}
	}
	return lockCtx, unlock, nil
}

// ProductMutex 是帶自動續期的 redsync 互斥鎖
type ProductMutex struct {
	mutex    *redsync.Mutex
	key      string
	options  productLockOptions
	mu       sync.Mutex
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	renewing bool
}

// Lock 取得鎖並啟動自動續期，鎖被占用時每隔 retryDelay 重試直到 ctx 結束
func (m *ProductMutex) Lock(ctx context.Context) (context.Context, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := m.mutex.LockContext(ctx)
		if err == nil {
			lockCtx, cancel := context.WithCancel(ctx)
			m.startAutoRenew(lockCtx, cancel)
			return lockCtx, nil
		}
		// Redis 連線錯誤直接返回，只有鎖被占用才重試
		var redisErr *redsync.RedisError
		if errors.As(err, &redisErr) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.options.retryDelay):
		}
	}
}

// Unlock 停止自動續期並釋放鎖
func (m *ProductMutex) Unlock() (bool, error) {
	m.stopAutoRenew()
	m.wg.Wait()
	return m.mutex.Unlock()
}

// Valid 判斷鎖是否仍由自己持有且尚未過期
func (m *ProductMutex) Valid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renewing && time.Now().Before(m.mutex.Until())
}

func (m *ProductMutex) startAutoRenew(ctx context.Context, cancel context.CancelFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancel = cancel
	m.renewing = true
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.options.renewInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// 續期失敗代表鎖可能已被他人取得，取消 context 中止後續寫入
				if ok, err := m.mutex.ExtendContext(ctx); err != nil || !ok {
					m.stopAutoRenew()
					return
				}
			}
		}
	}()
}

func (m *ProductMutex) stopAutoRenew() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.renewing = false
	if m.cancel != nil {
		m.cancel()
	}
}
