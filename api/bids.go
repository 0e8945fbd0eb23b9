package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"auction/bidding"
	"auction/models"
)

// Place a bid
// (POST /products/:productID/bids)
func (impl *ServerImpl) PostProductBids(c *gin.Context) {
	const op = "PostProductBids"
	user, err := impl.caller(c, op)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	var body BidRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	if _, err := impl.visibleProduct(c, op, id); err != nil {
		impl.respondError(c, op, err)
		return
	}

	result, err := impl.engine.PlaceBid(c.Request.Context(), user.ID, id, body.Amount)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	impl.publishEvent(newPlacedEvent(user.Username, result))

	c.JSON(http.StatusCreated, PlaceBidResponse{
		Bid:    newBidResponse(result.Bid),
		Price:  result.Price,
		Outbid: lo.Ternary(result.Outbid == nil, []uuid.UUID{}, result.Outbid),
	})
}

// Cancel the caller's leading bid
// (DELETE /products/:productID/bids)
func (impl *ServerImpl) DeleteProductBids(c *gin.Context) {
	const op = "DeleteProductBids"
	identity, err := identityFrom(c)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	outcome, err := impl.engine.CancelBid(c.Request.Context(), id, identity.Username)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	if outcome.Status == bidding.CancelStatusCancelled {
		impl.publishEvent(newCancelledEvent(identity.Username, outcome))
	}
	c.JSON(http.StatusOK, CancelBidResponse{Status: outcome.Status, Price: outcome.Price})
}

// Check a bid amount without placing it
// (POST /products/:productID/bids/validate)
func (impl *ServerImpl) PostProductBidsValidate(c *gin.Context) {
	const op = "PostProductBidsValidate"
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	var body BidRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := impl.visibleProduct(c, op, id)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}

	err = impl.engine.PreValidate(c.Request.Context(), id, body.Amount)
	var invalid *bidding.InvalidBidError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, ValidateBidResponse{Valid: true, Minimum: bidding.MinimumBid(*product)})
	case errors.As(err, &invalid):
		c.JSON(http.StatusOK, ValidateBidResponse{Valid: false, Reason: string(invalid.Reason), Minimum: invalid.Minimum})
	default:
		impl.respondError(c, op, err)
	}
}

// List bid history, newest first
// (GET /products/:productID/bids)
func (impl *ServerImpl) GetProductBids(c *gin.Context) {
	const op = "GetProductBids"
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	if _, err := impl.visibleProduct(c, op, id); err != nil {
		impl.respondError(c, op, err)
		return
	}
	bids, err := impl.engine.History(c.Request.Context(), id)
	if err != nil {
		impl.respondError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(bids, func(bid models.Bid, _ int) BidResponse {
		return newBidResponse(bid)
	}))
}
