package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bid 代表商品的出價紀錄
// 出價紀錄永遠不會被刪除，只會被標記為已取消
type Bid struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time       `gorm:"not null;<-:create"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null;<-:create"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_bids_user_product;<-:create"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index;index:idx_bids_user_product;<-:create"`
	Cancelled bool            `gorm:"not null;default:false"`

	// 外鍵關聯
	User *User `gorm:"foreignKey:UserID"`
}

// BeforeCreate 在寫入前產生時間有序的 UUID v7，確保較早的出價有較小的 ID
func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.ID != uuid.Nil {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// Active 判斷出價是否仍然有效
func (b Bid) Active() bool {
	return !b.Cancelled
}
