//go:generate mockgen -package=bidding -destination=mock.go -source=interfaces.go

package bidding

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"auction/models"
)

// IProductStore 定義了商品的讀寫介面
type IProductStore interface {
	// GetProduct 取得商品，商品不存在時返回 nil, nil
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// SaveProduct 以樂觀鎖寫回商品，版本不一致時返回 ErrConflict
	SaveProduct(ctx context.Context, product *models.Product) error
}

// IBidStore 定義了出價紀錄的讀寫介面
type IBidStore interface {
	// SaveBid 新增出價，或將既有出價標記為已取消
	SaveBid(ctx context.Context, bid *models.Bid) error
	// FindBidsByUserAndProduct 取得使用者在商品上的所有出價(含已取消)，並預載出價者
	FindBidsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) ([]models.Bid, error)
	// FindActiveBidsBelow 取得商品上金額嚴格小於 amount 的有效出價
	FindActiveBidsBelow(ctx context.Context, productID uuid.UUID, amount decimal.Decimal) ([]models.Bid, error)
	// FindActiveBids 取得商品上所有有效出價
	FindActiveBids(ctx context.Context, productID uuid.UUID) ([]models.Bid, error)
	// FindBidsByProduct 取得商品上所有出價，新的在前
	FindBidsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Bid, error)
}

// IUserDirectory 定義了使用者查詢介面
type IUserDirectory interface {
	// FindUserByUsername 依帳號取得使用者，不存在時返回 nil, nil
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUser 依 ID 取得使用者，不存在時返回 nil, nil
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// IRepository 組合了出價引擎需要的所有儲存介面，並提供交易範圍
type IRepository interface {
	IProductStore
	IBidStore
	IUserDirectory
	// Transaction 在同一個交易中執行 fn，fn 返回錯誤時整個交易回滾
	Transaction(ctx context.Context, fn func(repo IRepository) error) error
}

// ILocker 定義了商品層級的序列化鎖
type ILocker interface {
	// Lock 取得商品的鎖，返回的 context 會在失去鎖時被取消
	Lock(ctx context.Context, productID uuid.UUID) (context.Context, func(), error)
}
