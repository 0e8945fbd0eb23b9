package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"auction/bidding"
	"auction/models"
)

var ErrBidNotFound = errors.New("bid not found")

// Repository 是以 gorm 實作的儲存層，同時提供出價引擎與商品管理使用
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction 在資料庫交易中執行 fn，fn 收到的 repository 綁定在同一個交易上
func (r *Repository) Transaction(ctx context.Context, fn func(repo bidding.IRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	const op = "GetProduct"
	var product models.Product
	if result := r.db.WithContext(ctx).Where("id = ?", id).Take(&product); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("[%s] Fail to find product, err=%w", op, result.Error)
	}
	return &product, nil
}

// SaveProduct 以 version 作為樂觀鎖更新商品目前價格，標題、描述與上架狀態由商品管理負責，不在此寫入
func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	const op = "SaveProduct"
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND version = ?", product.ID, product.Version).
		Updates(map[string]any{
			"current_price": product.CurrentPrice,
			"version":       product.Version + 1,
			"updated_at":    now,
		})
	if result.Error != nil {
		return fmt.Errorf("[%s] Fail to update product, err=%w", op, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("[%s] Version mismatch, productID=%s, version=%d, err=%w", op, product.ID, product.Version, bidding.ErrConflict)
	}
	product.Version++
	product.UpdatedAt = now
	return nil
}

func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	const op = "CreateProduct"
	if result := r.db.WithContext(ctx).Create(product); result.Error != nil {
		return fmt.Errorf("[%s] Fail to create product, err=%w", op, result.Error)
	}
	return nil
}

// SearchProducts 以標題關鍵字(不分大小寫)搜尋商品，關鍵字為空時列出全部
func (r *Repository) SearchProducts(ctx context.Context, keyword string) ([]models.Product, error) {
	const op = "SearchProducts"
	var products []models.Product
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if keyword != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}
	if result := query.Order("id DESC").Find(&products); result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to search products, err=%w", op, result.Error)
	}
	return products, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const op = "DeleteProduct"
	if result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id); result.Error != nil {
		return fmt.Errorf("[%s] Fail to delete product, err=%w", op, result.Error)
	}
	return nil
}

// SetPublished 更新上架狀態並遞增 version，讓進行中的出價交易因版本不符而失敗
func (r *Repository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	const op = "SetPublished"
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"published":  published,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("[%s] Fail to update published status, err=%w", op, result.Error)
	}
	return nil
}

// UpdateProduct 更新標題與描述並遞增 version
func (r *Repository) UpdateProduct(ctx context.Context, id uuid.UUID, title, description string) error {
	const op = "UpdateProduct"
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":       title,
			"description": description,
			"version":     gorm.Expr("version + 1"),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("[%s] Fail to update product, err=%w", op, result.Error)
	}
	return nil
}

func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	const op = "CountProducts"
	var count int64
	if result := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count); result.Error != nil {
		return 0, fmt.Errorf("[%s] Fail to count products, err=%w", op, result.Error)
	}
	return count, nil
}

// SaveBid 新增出價，或將既有出價標記為已取消，已取消的出價不會被恢復
func (r *Repository) SaveBid(ctx context.Context, bid *models.Bid) error {
	const op = "SaveBid"
	if bid.ID == uuid.Nil {
		// 關聯的 User 只用於讀取，不跟著寫入
		if result := r.db.WithContext(ctx).Omit("User").Create(bid); result.Error != nil {
			return fmt.Errorf("[%s] Fail to create bid, err=%w", op, result.Error)
		}
		return nil
	}
	if !bid.Cancelled {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Bid{}).
		Where("id = ?", bid.ID).
		Update("cancelled", true)
	if result.Error != nil {
		return fmt.Errorf("[%s] Fail to cancel bid, err=%w", op, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("[%s] bidID=%s, err=%w", op, bid.ID, ErrBidNotFound)
	}
	return nil
}

func (r *Repository) FindBidsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) ([]models.Bid, error) {
	const op = "FindBidsByUserAndProduct"
	var bids []models.Bid
	result := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? AND product_id = ?", userID, productID).
		Order("id ASC").
		Find(&bids)
	if result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to find bids, err=%w", op, result.Error)
	}
	return bids, nil
}

func (r *Repository) FindActiveBidsBelow(ctx context.Context, productID uuid.UUID, amount decimal.Decimal) ([]models.Bid, error) {
	const op = "FindActiveBidsBelow"
	var bids []models.Bid
	result := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ? AND cancelled = ? AND amount < ?", productID, false, amount).
		Order("id ASC").
		Find(&bids)
	if result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to find bids, err=%w", op, result.Error)
	}
	return bids, nil
}

func (r *Repository) FindActiveBids(ctx context.Context, productID uuid.UUID) ([]models.Bid, error) {
	const op = "FindActiveBids"
	var bids []models.Bid
	result := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ? AND cancelled = ?", productID, false).
		Order("id ASC").
		Find(&bids)
	if result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to find bids, err=%w", op, result.Error)
	}
	return bids, nil
}

func (r *Repository) FindBidsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Bid, error) {
	const op = "FindBidsByProduct"
	var bids []models.Bid
	result := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("id DESC").
		Find(&bids)
	if result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to find bids, err=%w", op, result.Error)
	}
	return bids, nil
}

func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "FindUserByUsername"
	var user models.User
	if result := r.db.WithContext(ctx).Where("username = ?", username).Take(&user); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("[%s] Fail to find user, err=%w", op, result.Error)
	}
	return &user, nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "GetUser"
	var user models.User
	if result := r.db.WithContext(ctx).Where("id = ?", id).Take(&user); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("[%s] Fail to find user, err=%w", op, result.Error)
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	const op = "CreateUser"
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if result := r.db.WithContext(ctx).Create(user); result.Error != nil {
		return fmt.Errorf("[%s] Fail to create user, err=%w", op, result.Error)
	}
	return nil
}
