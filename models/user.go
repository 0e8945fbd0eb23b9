package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User 代表拍賣系統中的使用者
// 帳號管理不在本服務範圍內，這裡只保存出價與權限判斷需要的欄位
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	Username  string    `gorm:"type:varchar(255);not null;uniqueIndex;<-:create"`
	Role      Role      `gorm:"type:varchar(16);not null;default:'USER'"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID != uuid.Nil {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// IsAdmin 判斷使用者是否為管理員
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
