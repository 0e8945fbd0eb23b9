package bidding

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"auction/models"
)

// Leader 找出領先的出價: 未取消且金額最高者，金額相同時取 ID 最小(最早)的出價
// excluding 中的出價以 ID 排除，不以金額排除
func Leader(bids []models.Bid, excluding ...uuid.UUID) (models.Bid, bool) {
	var (
		leader models.Bid
		found  bool
	)
	for _, bid := range bids {
		if bid.Cancelled || lo.Contains(excluding, bid.ID) {
			continue
		}
		if !found || bid.Amount.GreaterThan(leader.Amount) ||
			(bid.Amount.Equal(leader.Amount) && bytes.Compare(bid.ID[:], leader.ID[:]) < 0) {
			leader = bid
			found = true
		}
	}
	return leader, found
}

// Resolve 計算商品目前價格: 領先出價的金額，沒有任何有效出價時回到起標價
func Resolve(product models.Product, bids []models.Bid, excluding ...uuid.UUID) decimal.Decimal {
	leader, ok := Leader(bids, excluding...)
	if !ok {
		return product.StartPrice
	}
	return leader.Amount
}
