package sse_test

import (
	"io"
	"log"
	"sync"
)

func init() {
	// 將日誌輸出重定向到io.Discard
	log.SetOutput(io.Discard)
}

// Message 表示一個 SSE 訊息，包含資料字段。
type Message struct {
	Data string `json:"data"`
}

// fakeSubscriber 以 channel 模擬跨實例的訊息來源
type fakeSubscriber[T any] struct {
	ch        chan T
	closeOnce sync.Once
	started   bool
}

func newFakeSubscriber[T any]() *fakeSubscriber[T] {
	return &fakeSubscriber[T]{ch: make(chan T, 8)}
}

func (f *fakeSubscriber[T]) Start()              { f.started = true }
func (f *fakeSubscriber[T]) Subscribe() <-chan T { return f.ch }
func (f *fakeSubscriber[T]) Close()              { f.closeOnce.Do(func() { close(f.ch) }) }
