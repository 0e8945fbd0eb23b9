package bidding

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidBid      = errors.New("invalid bid")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrStorage         = errors.New("storage failure")
	ErrConflict        = errors.New("product was modified concurrently")

	// ErrUserNotFound 是出價者不存在時的 ErrNotFound
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
)

// Reason 表示出價被拒絕的原因
type Reason string

const (
	ReasonBelowMinimumIncrement Reason = "below-minimum-increment"
	ReasonBelowStartPrice       Reason = "below-start-price"
	ReasonOffStepGrid           Reason = "off-step-grid"
)

// InvalidBidError 表示出價未通過驗證
type InvalidBidError struct {
	Reason  Reason
	Amount  decimal.Decimal
	Minimum decimal.Decimal
}

func (e *InvalidBidError) Error() string {
	return fmt.Sprintf("%s: %s, amount=%s, minimum=%s", ErrInvalidBid, e.Reason, e.Amount, e.Minimum)
}

func (e *InvalidBidError) Unwrap() error {
	return ErrInvalidBid
}

// storageError 包裝儲存層錯誤，ErrConflict 與 context 錯誤保持原樣讓呼叫端判斷
func storageError(op, action string, err error) error {
	if errors.Is(err, ErrConflict) {
		return fmt.Errorf("[%s] Fail to %s, err=%w", op, action, err)
	}
	return fmt.Errorf("[%s] Fail to %s, err=%w", op, action, errors.Join(ErrStorage, err))
}
