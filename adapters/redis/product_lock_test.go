package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var testProductID = uuid.MustParse("01920000-0000-7000-8000-0000000000aa")

const testLockKey = "auction:product:01920000-0000-7000-8000-0000000000aa:lock"

func TestNewProductLocker(t *testing.T) {
	client, _, cleanup := setupTest(t)
	defer cleanup()

	tests := []struct {
		name    string
		client  *redis.Client
		opts    []ProductLockerOption
		wantErr string
	}{
		{
			name:   "default options",
			client: client,
		},
		{
			name:   "custom options",
			client: client,
			opts: []ProductLockerOption{
				WithProductLockExpiry(5 * time.Second),
				WithProductLockRenewInterval(time.Second),
				WithProductLockRetryDelay(10 * time.Millisecond),
			},
		},
		{
			name:    "nil client",
			client:  nil,
			wantErr: "redis client cannot be nil",
		},
		{
			name:    "zero expiry",
			client:  client,
			opts:    []ProductLockerOption{WithProductLockExpiry(0)},
			wantErr: "lock expiry must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locker, err := NewProductLocker(tt.client, "auction:", tt.opts...)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, locker)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testLockKey, locker.Key(testProductID))
		})
	}
}

func TestProductMutex_Lock(t *testing.T) {
	t.Run("lock and unlock", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, mock, cleanup := setupTest(t)
		defer cleanup()

		mock.Regexp().ExpectSetNX(testLockKey, ".*", 8*time.Second).SetVal(true)
		mock.Regexp().ExpectEvalSha(".*", []string{testLockKey}, []string{".*"}).SetVal(int64(1))

		locker, err := NewProductLocker(client, "auction:")
		require.NoError(t, err)
		mutex := locker.NewMutex(testProductID)

		lockCtx, err := mutex.Lock(context.Background())
		require.NoError(t, err)
		assert.True(t, mutex.Valid())

		ok, err := mutex.Unlock()
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, mutex.Valid())

		select {
		case <-lockCtx.Done():
		case <-time.After(100 * time.Millisecond):
			t.Error("lock context was not cancelled after unlock")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, _, cleanup := setupTest(t)
		defer cleanup()

		locker, err := NewProductLocker(client, "auction:")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		lockCtx, err := locker.NewMutex(testProductID).Lock(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, lockCtx)
	})

	t.Run("redis error is returned", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, mock, cleanup := setupTest(t)
		defer cleanup()

		mock.Regexp().ExpectSetNX(testLockKey, ".*", 8*time.Second).SetErr(redis.ErrClosed)

		locker, err := NewProductLocker(client, "auction:")
		require.NoError(t, err)

		lockCtx, err := locker.NewMutex(testProductID).Lock(context.Background())
		assert.ErrorIs(t, err, redis.ErrClosed)
		assert.Nil(t, lockCtx)
	})

	t.Run("held lock waits until deadline", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, mock, cleanup := setupTest(t)
		defer cleanup()

		// 鎖已被他人持有
		mock.Regexp().ExpectSetNX(testLockKey, ".*", 8*time.Second).SetVal(false)
		mock.Regexp().ExpectEvalSha(".*", []string{testLockKey}, []string{".*"}).SetVal(int64(0))

		locker, err := NewProductLocker(client, "auction:", WithProductLockRetryDelay(time.Second))
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		lockCtx, err := locker.NewMutex(testProductID).Lock(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Nil(t, lockCtx)
	})
}

func TestProductMutex_AutoRenew(t *testing.T) {
	t.Run("renews while held", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, mr, cleanup := setupMiniredis(t)
		defer cleanup()

		locker, err := NewProductLocker(client, "auction:",
			WithProductLockExpiry(2*time.Second),
			WithProductLockRenewInterval(50*time.Millisecond))
		require.NoError(t, err)
		mutex := locker.NewMutex(testProductID)

		_, err = mutex.Lock(context.Background())
		require.NoError(t, err)

		// 讓鎖接近過期，續期後 TTL 應回到完整的過期時間
		mr.FastForward(1500 * time.Millisecond)
		assert.Eventually(t, func() bool {
			return mr.TTL(testLockKey) > time.Second
		}, time.Second, 10*time.Millisecond, "lock was not renewed")
		assert.True(t, mutex.Valid())

		ok, err := mutex.Unlock()
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, mr.Exists(testLockKey))
	})

	t.Run("failed renewal cancels the lock context", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, mock, cleanup := setupTest(t)
		defer cleanup()

		mock.Regexp().ExpectSetNX(testLockKey, ".*", 2*time.Second).SetVal(true)
		mock.Regexp().ExpectEvalSha(".*", []string{testLockKey}, []string{".*", "2000"}).SetErr(redis.ErrClosed)
		mock.Regexp().ExpectEvalSha(".*", []string{testLockKey}, []string{".*"}).SetVal(int64(-1))

		locker, err := NewProductLocker(client, "auction:",
			WithProductLockExpiry(2*time.Second),
			WithProductLockRenewInterval(100*time.Millisecond))
		require.NoError(t, err)
		mutex := locker.NewMutex(testProductID)

		lockCtx, err := mutex.Lock(context.Background())
		require.NoError(t, err)

		select {
		case <-lockCtx.Done():
		case <-time.After(time.Second):
			t.Fatal("lock context was not cancelled after renewal failure")
		}
		assert.False(t, mutex.Valid())

		ok, err := mutex.Unlock()
		assert.ErrorIs(t, err, redsync.ErrLockAlreadyExpired)
		assert.False(t, ok)
	})
}

func TestProductLocker_Serializes(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, _, cleanup := setupMiniredis(t)
	defer cleanup()

	locker, err := NewProductLocker(client, "auction:", WithProductLockRetryDelay(5*time.Millisecond))
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		maxSeen int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_, unlock, err := locker.Lock(ctx, testProductID)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			holders++
			maxSeen = max(maxSeen, holders)
			mu.Unlock()

			time.Sleep(20 * time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen, "only one holder may own the product lock at a time")

	// 不同商品的鎖彼此獨立
	ctx := context.Background()
	_, unlockA, err := locker.Lock(ctx, testProductID)
	require.NoError(t, err)
	defer unlockA()
	_, unlockB, err := locker.Lock(ctx, uuid.MustParse("01920000-0000-7000-8000-0000000000bb"))
	require.NoError(t, err)
	defer unlockB()
}
