package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 代表拍賣系統中上架的商品
// CurrentPrice 是由出價紀錄推導出的快取值，只能透過出價引擎重新計算後寫入
type Product struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Title         string          `gorm:"type:varchar(128);not null"`
	Description   string          `gorm:"type:varchar(256);not null;default:''"`
	Published     bool            `gorm:"not null;default:false"`
	OwnerUsername string          `gorm:"type:varchar(255);not null;index;<-:create"`
	StartPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null;<-:create"`
	CurrentPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	// Version 用於樂觀鎖，價格、上架狀態或內容每次更新都會遞增
	Version uint64 `gorm:"not null;default:0"`
}

// BeforeCreate 在寫入前產生時間有序的 UUID v7
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID != uuid.Nil {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}
