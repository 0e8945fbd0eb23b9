package database

import (
	"fmt"

	"gorm.io/gorm"

	"auction/models"
)

// Models 是需要建立資料表的所有模型，也提供給 atlas loader 產生 schema
var Models = []any{
	&models.User{},
	&models.Product{},
	&models.Bid{},
}

// Migrate 以 gorm AutoMigrate 建立或更新資料表
func Migrate(db *gorm.DB) error {
	const op = "Migrate"
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("[%s] Fail to migrate schema, err=%w", op, err)
	}
	return nil
}
