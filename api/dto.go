package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"auction/bidding"
	"auction/models"
)

type CreateProductRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	StartPrice  decimal.Decimal `json:"startPrice"`
	Published   bool            `json:"published"`
}

type UpdateProductRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

type BidRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Published    bool            `json:"published"`
	Owner        string          `json:"owner"`
	StartPrice   decimal.Decimal `json:"startPrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	MinimumBid   decimal.Decimal `json:"minimumBid"`
	Leader       *BidResponse    `json:"leader,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type BidResponse struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Username  string          `json:"username"`
	Cancelled bool            `json:"cancelled"`
	CreatedAt time.Time       `json:"createdAt"`
}

type PlaceBidResponse struct {
	Bid    BidResponse     `json:"bid"`
	Price  decimal.Decimal `json:"price"`
	Outbid []uuid.UUID     `json:"outbid"`
}

type CancelBidResponse struct {
	Status bidding.CancelStatus `json:"status"`
	Price  decimal.Decimal      `json:"price"`
}

type ValidateBidResponse struct {
	Valid   bool            `json:"valid"`
	Reason  string          `json:"reason,omitempty"`
	Minimum decimal.Decimal `json:"minimum"`
}

func newProductResponse(product models.Product, leader *models.Bid) ProductResponse {
	resp := ProductResponse{
		ID:           product.ID,
		Title:        product.Title,
		Description:  product.Description,
		Published:    product.Published,
		Owner:        product.OwnerUsername,
		StartPrice:   product.StartPrice,
		CurrentPrice: product.CurrentPrice,
		MinimumBid:   bidding.MinimumBid(product),
		CreatedAt:    product.CreatedAt,
	}
	if leader != nil {
		resp.Leader = lo.ToPtr(newBidResponse(*leader))
	}
	return resp
}

func newBidResponse(bid models.Bid) BidResponse {
	resp := BidResponse{
		ID:        bid.ID,
		Amount:    bid.Amount,
		Cancelled: bid.Cancelled,
		CreatedAt: bid.CreatedAt,
	}
	if bid.User != nil {
		resp.Username = bid.User.Username
	}
	return resp
}
