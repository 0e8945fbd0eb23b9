package redis

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestNewProducer(t *testing.T) {
	client := redis.NewClient(&redis.Options{})
	defer client.Close()

	tests := []struct {
		name    string
		client  *redis.Client
		stream  string
		opts    []ProducerOption[TestMessage]
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid configuration",
			client: client,
			stream: "bid-events",
		},
		{
			name:    "nil client",
			client:  nil,
			stream:  "bid-events",
			wantErr: true,
			errMsg:  "redis client cannot be nil",
		},
		{
			name:    "empty stream",
			client:  client,
			stream:  "",
			wantErr: true,
			errMsg:  "stream cannot be empty",
		},
		{
			name:   "with all options",
			client: client,
			stream: "bid-events",
			opts: []ProducerOption[TestMessage]{
				WithProducerLogger[TestMessage](slog.Default()),
				WithProducerBufferSize[TestMessage](10),
				WithProducerMaxLen[TestMessage](0),
				WithProducerParseFunc[TestMessage](func(TestMessage) (map[string]any, error) {
					return map[string]any{"k": "v"}, nil
				}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			producer, err := NewProducer[TestMessage](tt.client, tt.stream, tt.opts...)
			if tt.wantErr {
				assert.ErrorContains(t, err, tt.errMsg)
				assert.Nil(t, producer)
				return
			}
			require.NoError(t, err)
			producer.Close()
		})
	}
}

func TestProducer_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, _, cleanup := setupTest(t)
	defer cleanup()

	producer, err := NewProducer[TestMessage](client, "bid-events")
	require.NoError(t, err)

	producer.Start()
	producer.Start() // 重複啟動不應建立第二個 goroutine
	producer.Close()
	producer.Close() // 重複關閉不應 panic
}

func TestProducer_Publish(t *testing.T) {
	t.Run("messages reach the stream in order", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, _, cleanup := setupMiniredis(t)
		defer cleanup()

		producer, err := NewProducer[TestMessage](client, "bid-events")
		require.NoError(t, err)
		producer.Start()
		defer producer.Close()

		amounts := []string{"105", "110", "115"}
		for _, amount := range amounts {
			require.NoError(t, producer.Publish(newTestMessage(amount)))
		}

		ctx := context.Background()
		require.Eventually(t, func() bool {
			n, err := client.XLen(ctx, "bid-events").Result()
			return err == nil && n == int64(len(amounts))
		}, 2*time.Second, 10*time.Millisecond)

		entries, err := client.XRange(ctx, "bid-events", "-", "+").Result()
		require.NoError(t, err)
		for i, entry := range entries {
			msg, err := DefaultParseFromMessage[TestMessage](entry.Values)
			require.NoError(t, err)
			assert.Equal(t, amounts[i], msg.Amount)
		}
	})

	t.Run("stream is trimmed with max length", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, mock, cleanup := setupTest(t)
		defer cleanup()

		msg := newTestMessage("105")
		values, err := DefaultParseToMessage(msg)
		require.NoError(t, err)
		mock.ExpectXAdd(&redis.XAddArgs{
			Stream: "bid-events",
			MaxLen: 50,
			Approx: true,
			Values: values,
		}).SetVal("1-0")

		producer, err := NewProducer[TestMessage](client, "bid-events", WithProducerMaxLen[TestMessage](50))
		require.NoError(t, err)
		producer.Start()
		require.NoError(t, producer.Publish(msg))

		require.Eventually(t, func() bool {
			return mock.ExpectationsWereMet() == nil
		}, time.Second, 10*time.Millisecond)
		producer.Close()
	})

	t.Run("publish before start", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, _, cleanup := setupTest(t)
		defer cleanup()

		producer, err := NewProducer[TestMessage](client, "bid-events")
		require.NoError(t, err)
		assert.ErrorIs(t, producer.Publish(newTestMessage("105")), ErrProducerClosed)
	})

	t.Run("publish after close", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, _, cleanup := setupTest(t)
		defer cleanup()

		producer, err := NewProducer[TestMessage](client, "bid-events")
		require.NoError(t, err)
		producer.Start()
		producer.Close()
		assert.ErrorIs(t, producer.Publish(newTestMessage("105")), ErrProducerClosed)
	})

	t.Run("parse error is returned", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, _, cleanup := setupTest(t)
		defer cleanup()

		parseErr := errors.New("parse error")
		producer, err := NewProducer[TestMessage](client, "bid-events",
			WithProducerParseFunc[TestMessage](func(TestMessage) (map[string]any, error) {
				return nil, parseErr
			}))
		require.NoError(t, err)
		producer.Start()
		defer producer.Close()

		assert.ErrorIs(t, producer.Publish(TestMessage{}), parseErr)
	})

	t.Run("redis error does not stop the producer", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, mock, cleanup := setupTest(t)
		defer cleanup()

		first, err := DefaultParseToMessage(newTestMessage("105"))
		require.NoError(t, err)
		second, err := DefaultParseToMessage(newTestMessage("110"))
		require.NoError(t, err)
		mock.ExpectXAdd(&redis.XAddArgs{Stream: "bid-events", MaxLen: 10000, Approx: true, Values: first}).SetErr(redis.ErrClosed)
		mock.ExpectXAdd(&redis.XAddArgs{Stream: "bid-events", MaxLen: 10000, Approx: true, Values: second}).SetVal("2-0")

		producer, err := NewProducer[TestMessage](client, "bid-events")
		require.NoError(t, err)
		producer.Start()
		require.NoError(t, producer.Publish(newTestMessage("105")))
		require.NoError(t, producer.Publish(newTestMessage("110")))

		require.Eventually(t, func() bool {
			return mock.ExpectationsWereMet() == nil
		}, time.Second, 10*time.Millisecond)
		producer.Close()
	})
}
