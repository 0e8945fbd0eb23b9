//go:generate mockgen -package=listing -destination=mock.go -source=interfaces.go

package listing

import (
	"context"

	"github.com/google/uuid"

	"auction/models"
)

// ICatalog 定義了商品管理需要的儲存介面
type ICatalog interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	// GetProduct 取得商品，商品不存在時返回 nil, nil
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	SearchProducts(ctx context.Context, keyword string) ([]models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	// UpdateProduct 更新標題與描述，不影響目前價格
	UpdateProduct(ctx context.Context, id uuid.UUID, title, description string) error
	CountProducts(ctx context.Context) (int64, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}
