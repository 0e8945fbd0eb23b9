package bidding

import (
	"github.com/shopspring/decimal"

	"auction/models"
)

// Step 是出價的最小增額，同時也是出價金額的級距
var Step = decimal.NewFromInt(5)

// Validate 檢查出價金額是否可被接受，規則依序檢查，回報第一個不符合的規則
//  1. 金額至少比目前價格高出一個級距
//  2. 金額不低於起標價
//  3. 金額與目前價格的差額必須是級距的整數倍
func Validate(product models.Product, amount decimal.Decimal) error {
	minimum := MinimumBid(product)
	if amount.LessThan(product.CurrentPrice.Add(Step)) {
		return &InvalidBidError{Reason: ReasonBelowMinimumIncrement, Amount: amount, Minimum: minimum}
	}
	if amount.LessThan(product.StartPrice) {
		return &InvalidBidError{Reason: ReasonBelowStartPrice, Amount: amount, Minimum: minimum}
	}
	if !amount.Sub(product.CurrentPrice).Mod(Step).IsZero() {
		return &InvalidBidError{Reason: ReasonOffStepGrid, Amount: amount, Minimum: minimum}
	}
	return nil
}

// MinimumBid 回傳下一筆出價的最低金額
// 目前價格未設定(零)時，起標價可能高於 目前價格+級距，此時取兩者較大者再對齊級距
func MinimumBid(product models.Product) decimal.Decimal {
	minimum := product.CurrentPrice.Add(Step)
	if minimum.GreaterThanOrEqual(product.StartPrice) {
		return minimum
	}
	// 對齊到 CurrentPrice + n*Step 且不低於起標價
	gap := product.StartPrice.Sub(product.CurrentPrice)
	steps := gap.Div(Step).Ceil()
	return product.CurrentPrice.Add(steps.Mul(Step))
}
