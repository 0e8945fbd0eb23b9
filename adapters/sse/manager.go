package sse

import (
	"errors"
	"log/slog"
	"sync"
)

var ErrManagerClosed = errors.New("connection manager is closed")

type managerOptions[T any] struct {
	logger     *slog.Logger
	subscriber ISubscriber[PublishRequest[T]]
	bufferSize int
}

type ManagerOption[T any] func(*managerOptions[T])

// WithLogger 設置日誌記錄器
func WithLogger[T any](logger *slog.Logger) ManagerOption[T] {
	return func(o *managerOptions[T]) {
		o.logger = logger
	}
}

// WithSubscriber 設置跨實例的訊息來源，收到的訊息會廣播到對應頻道
func WithSubscriber[T any](subscriber ISubscriber[PublishRequest[T]]) ManagerOption[T] {
	return func(o *managerOptions[T]) {
		o.subscriber = subscriber
	}
}

// WithBufferSize 設置每個連線的緩衝大小
func WithBufferSize[T any](size int) ManagerOption[T] {
	return func(o *managerOptions[T]) {
		o.bufferSize = size
	}
}

// connectionManager 管理多個 SSE 頻道的訂閱與發布。
// 設置 subscriber 時由 subscriber 提供所有實例共享的訊息，否則只處理本實例的 Publish。
type connectionManager[T any] struct {
	logger  *slog.Logger
	options managerOptions[T]

	mu       sync.RWMutex
	wg       sync.WaitGroup
	started  bool
	closed   bool
	channels map[string]IChannel[T]
}

func NewConnectionManager[T any](opts ...ManagerOption[T]) (IConnectionManager[T], error) {
	// 默認選項
	options := managerOptions[T]{
		logger:     slog.Default(),
		bufferSize: 16,
	}

	// 應用自定義選項
	for _, opt := range opts {
		opt(&options)
	}
	if options.bufferSize <= 0 {
		return nil, errors.New("buffer size must be positive")
	}

	return &connectionManager[T]{
		logger:   options.logger.With(slog.String("caller", "ConnectionManager")),
		options:  options,
		channels: make(map[string]IChannel[T]),
	}, nil
}

func (cm *connectionManager[T]) Start() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.started || cm.closed || cm.options.subscriber == nil {
		return
	}
	cm.started = true
	cm.options.subscriber.Start()

	cm.wg.Add(1)
	go func() {
		defer cm.wg.Done()
		for req := range cm.options.subscriber.Subscribe() {
			cm.broadcast(req.Channel, req.Message)
		}
	}()
}

func (cm *connectionManager[T]) Done() {
	cm.mu.Lock()
	if cm.closed {
		cm.mu.Unlock()
		return
	}
	cm.closed = true
	started := cm.started
	cm.mu.Unlock()

	// subscriber 關閉後下游通道會被關閉，轉發 goroutine 隨之結束
	if started {
		cm.options.subscriber.Close()
		cm.wg.Wait()
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	for _, channel := range cm.channels {
		channel.UnsubscribeAll()
	}
	clear(cm.channels)
}

func (cm *connectionManager[T]) Subscribe(channelName string) (<-chan T, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.closed {
		return nil, ErrManagerClosed
	}

	c, ok := cm.channels[channelName]
	if !ok {
		c = NewChannel[T](cm.options.bufferSize)
		cm.channels[channelName] = c
	}
	return c.Subscribe(), nil
}

func (cm *connectionManager[T]) Publish(channelName string, data T) error {
	cm.mu.RLock()
	closed := cm.closed
	cm.mu.RUnlock()
	if closed {
		return ErrManagerClosed
	}
	cm.broadcast(channelName, data)
	return nil
}

func (cm *connectionManager[T]) broadcast(channelName string, data T) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	channel, ok := cm.channels[channelName]
	if !ok {
		return
	}
	if dropped := channel.Broadcast(data); dropped > 0 {
		cm.logger.Warn("Drop message for slow subscribers",
			slog.String("channel", channelName),
			slog.Int("dropped", dropped))
	}
}

func (cm *connectionManager[T]) Unsubscribe(channelName string, ch <-chan T) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	c, ok := cm.channels[channelName]
	if !ok {
		return
	}
	c.Unsubscribe(ch)
	if c.IsIdle() {
		delete(cm.channels, channelName)
	}
}
