//go:generate mockgen -package=sse -destination=mock.go -source=interfaces.go

package sse

// PublishRequest 表示一個發布請求，包含頻道名稱和訊息。
type PublishRequest[T any] struct {
	Channel string `msgpack:"channel" json:"channel"`
	Message T      `msgpack:"message" json:"message"`
}

// ISubscriber 是跨實例訊息的來源，例如 Redis Stream 的 Consumer
type ISubscriber[T any] interface {
	Start()
	Subscribe() <-chan T
	Close()
}

// IChannel 定義了單一頻道的訂閱與廣播介面
type IChannel[T any] interface {
	// Subscribe 建立一個新的訂閱並返回接收訊息的通道
	Subscribe() <-chan T
	// Unsubscribe 取消指定通道的訂閱並關閉通道
	Unsubscribe(ch <-chan T)
	// UnsubscribeAll 取消所有訂閱
	UnsubscribeAll()
	// Broadcast 將訊息廣播給所有訂閱者，返回因緩衝已滿而丟棄的數量
	Broadcast(message T) int
	// IsIdle 檢查是否沒有訂閱者
	IsIdle() bool
}

// IConnectionManager 定義了 SSE 連線管理員的介面
type IConnectionManager[T any] interface {
	// Start 啟動 ConnectionManager，開始轉發訂閱來源的訊息。
	Start()
	// Done 停止 ConnectionManager，關閉所有訂閱。
	Done()
	// Subscribe 訂閱指定頻道
	Subscribe(channelName string) (<-chan T, error)
	// Publish 將訊息廣播給本實例上訂閱指定頻道的連線
	Publish(channelName string, data T) error
	// Unsubscribe 取消訂閱指定頻道
	Unsubscribe(channelName string, ch <-chan T)
}
