package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"auction/adapters/sse"
	"auction/bidding"
)

const (
	BidEventPlaced    = "placed"
	BidEventCancelled = "cancelled"
)

// BidEvent 是推送給 SSE 訂閱者的出價事件，金額以字串表示避免序列化時失去精度
type BidEvent struct {
	ProductID uuid.UUID `msgpack:"productId" json:"productId"`
	Kind      string    `msgpack:"kind" json:"kind"`
	Username  string    `msgpack:"username" json:"username"`
	Amount    string    `msgpack:"amount" json:"amount"`
	Price     string    `msgpack:"price" json:"price"`
	Outbid    []string  `msgpack:"outbid" json:"outbid,omitempty"`
	Time      time.Time `msgpack:"time" json:"time"`
}

func newPlacedEvent(username string, result *bidding.PlaceResult) BidEvent {
	return BidEvent{
		ProductID: result.Bid.ProductID,
		Kind:      BidEventPlaced,
		Username:  username,
		Amount:    result.Bid.Amount.String(),
		Price:     result.Price.String(),
		Outbid:    lo.Map(result.Outbid, func(id uuid.UUID, _ int) string { return id.String() }),
		Time:      time.Now(),
	}
}

func newCancelledEvent(username string, outcome *bidding.CancelOutcome) BidEvent {
	return BidEvent{
		ProductID: outcome.Bid.ProductID,
		Kind:      BidEventCancelled,
		Username:  username,
		Amount:    outcome.Bid.Amount.String(),
		Price:     outcome.Price.String(),
		Time:      time.Now(),
	}
}

// publishEvent 在交易提交後發布出價事件；發布失敗不影響已提交的結果，只記錄日誌
func (impl *ServerImpl) publishEvent(event BidEvent) {
	request := sse.PublishRequest[BidEvent]{
		Channel: event.ProductID.String(),
		Message: event,
	}
	var err error
	if impl.producer != nil {
		err = impl.producer.Publish(request)
	} else {
		err = impl.sseManager.Publish(request.Channel, request.Message)
	}
	if err != nil {
		impl.logger.Warn("Fail to publish bid event",
			slog.String("productID", event.ProductID.String()),
			slog.String("kind", event.Kind),
			slog.Any("error", err))
	}
}

// Track product bid events
// (GET /products/:productID/events)
func (impl *ServerImpl) GetProductEvents(c *gin.Context) {
	const op = "GetProductEvents"
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	product, err := impl.visibleProduct(c, op, productID)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}

	ch, err := impl.sseManager.Subscribe(productID.String())
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	defer impl.sseManager.Unsubscribe(productID.String(), ch)

	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)

	// 連線建立時先送出目前價格
	c.SSEvent("price", gin.H{"productId": product.ID, "price": product.CurrentPrice})
	w.Flush()

	keepAlive := time.NewTicker(impl.keepAlive)
	defer keepAlive.Stop()
	for {
		select {
		case <-c.Request.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			c.SSEvent("bid", event)
			w.Flush()
		// 一段時間沒有事件就送出註解行，避免代理伺服器斷開閒置連線
		case <-keepAlive.C:
			if _, err := w.WriteString(": keep-alive\n\n"); err != nil {
				return
			}
			w.Flush()
		}
	}
}
