//go:generate mockgen -package=redis -destination=mock.go -source=interfaces.go

package redis

import (
	"context"
)

// IProducer 定義了將訊息寫入 Redis Stream 的介面
type IProducer[T any] interface {
	Start()
	Publish(data T) error
	Close()
}

// IConsumer 定義了從 Redis Stream 讀取訊息的介面
type IConsumer[T any] interface {
	Start()
	Subscribe() <-chan T
	Close()
}

// IProductMutex 定義了單一商品互斥鎖的操作介面
type IProductMutex interface {
	Lock(ctx context.Context) (context.Context, error)
	Unlock() (bool, error)
	Valid() bool
}
