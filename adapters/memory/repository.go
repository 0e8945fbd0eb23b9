package memory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"auction/bidding"
	"auction/models"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrBidNotFound       = errors.New("bid not found")
)

type data struct {
	products map[uuid.UUID]models.Product
	bids     map[uuid.UUID]models.Bid
	users    map[uuid.UUID]models.User
}

func (d *data) clone() *data {
	return &data{
		products: maps.Clone(d.products),
		bids:     maps.Clone(d.bids),
		users:    maps.Clone(d.users),
	}
}

type store struct {
	mu   sync.Mutex
	data *data
}

// Repository 是以記憶體保存資料的儲存實作，用於開發與測試
// 交易期間會持有全域鎖，所有交易彼此序列化
type Repository struct {
	store *store
	// tx 不為 nil 時代表目前在交易中，所有操作都作用在交易的副本上
	tx *data
}

func NewRepository() *Repository {
	return &Repository{
		store: &store{
			data: &data{
				products: make(map[uuid.UUID]models.Product),
				bids:     make(map[uuid.UUID]models.Bid),
				users:    make(map[uuid.UUID]models.User),
			},
		},
	}
}

func (r *Repository) view(ctx context.Context, fn func(d *data) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.data)
}

// Transaction 在資料副本上執行 fn，成功時才替換回主資料
func (r *Repository) Transaction(ctx context.Context, fn func(repo bidding.IRepository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &Repository{store: r.store, tx: r.store.data.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	// 交易期間 context 被取消時視同回滾
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.data = tx.tx
	return nil
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var result *models.Product
	err := r.view(ctx, func(d *data) error {
		if product, ok := d.products[id]; ok {
			result = &product
		}
		return nil
	})
	return result, err
}

func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	const op = "SaveProduct"
	return r.view(ctx, func(d *data) error {
		stored, ok := d.products[product.ID]
		if !ok || stored.Version != product.Version {
			return fmt.Errorf("[%s] Version mismatch, productID=%s, err=%w", op, product.ID, bidding.ErrConflict)
		}
		stored.CurrentPrice = product.CurrentPrice
		stored.UpdatedAt = time.Now()
		stored.Version++
		d.products[product.ID] = stored
		product.Version = stored.Version
		product.UpdatedAt = stored.UpdatedAt
		return nil
	})
}

func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.view(ctx, func(d *data) error {
		if product.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			product.ID = id
		}
		now := time.Now()
		product.CreatedAt = now
		product.UpdatedAt = now
		d.products[product.ID] = *product
		return nil
	})
}

func (r *Repository) SearchProducts(ctx context.Context, keyword string) ([]models.Product, error) {
	var result []models.Product
	err := r.view(ctx, func(d *data) error {
		keyword = strings.ToLower(keyword)
		result = lo.Filter(lo.Values(d.products), func(p models.Product, _ int) bool {
			return strings.Contains(strings.ToLower(p.Title), keyword)
		})
		slices.SortFunc(result, func(a, b models.Product) int {
			return bytes.Compare(b.ID[:], a.ID[:])
		})
		return nil
	})
	return result, err
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.view(ctx, func(d *data) error {
		delete(d.products, id)
		return nil
	})
}

func (r *Repository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	return r.view(ctx, func(d *data) error {
		product, ok := d.products[id]
		if !ok {
			return nil
		}
		product.Published = published
		product.UpdatedAt = time.Now()
		product.Version++
		d.products[id] = product
		return nil
	})
}

func (r *Repository) UpdateProduct(ctx context.Context, id uuid.UUID, title, description string) error {
	return r.view(ctx, func(d *data) error {
		product, ok := d.products[id]
		if !ok {
			return nil
		}
		product.Title = title
		product.Description = description
		product.UpdatedAt = time.Now()
		product.Version++
		d.products[id] = product
		return nil
	})
}

func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.view(ctx, func(d *data) error {
		count = int64(len(d.products))
		return nil
	})
	return count, err
}

// SaveBid 新增出價，或將既有出價標記為已取消，已取消的出價不會被恢復
func (r *Repository) SaveBid(ctx context.Context, bid *models.Bid) error {
	const op = "SaveBid"
	return r.view(ctx, func(d *data) error {
		if bid.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			bid.ID = id
			bid.CreatedAt = time.Now()
			stored := *bid
			stored.User = nil
			d.bids[bid.ID] = stored
			return nil
		}
		stored, ok := d.bids[bid.ID]
		if !ok {
			return fmt.Errorf("[%s] bidID=%s, err=%w", op, bid.ID, ErrBidNotFound)
		}
		if bid.Cancelled {
			stored.Cancelled = true
			d.bids[bid.ID] = stored
		}
		return nil
	})
}

func (r *Repository) FindBidsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) ([]models.Bid, error) {
	return r.findBids(ctx, false, func(b models.Bid) bool {
		return b.UserID == userID && b.ProductID == productID
	})
}

func (r *Repository) FindActiveBidsBelow(ctx context.Context, productID uuid.UUID, amount decimal.Decimal) ([]models.Bid, error) {
	return r.findBids(ctx, false, func(b models.Bid) bool {
		return b.ProductID == productID && !b.Cancelled && b.Amount.LessThan(amount)
	})
}

func (r *Repository) FindActiveBids(ctx context.Context, productID uuid.UUID) ([]models.Bid, error) {
	return r.findBids(ctx, false, func(b models.Bid) bool {
		return b.ProductID == productID && !b.Cancelled
	})
}

func (r *Repository) FindBidsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Bid, error) {
	return r.findBids(ctx, true, func(b models.Bid) bool {
		return b.ProductID == productID
	})
}

// findBids 篩選出價並預載出價者，預設依 ID 遞增排序
func (r *Repository) findBids(ctx context.Context, newestFirst bool, predicate func(models.Bid) bool) ([]models.Bid, error) {
	var result []models.Bid
	err := r.view(ctx, func(d *data) error {
		for _, bid := range d.bids {
			if !predicate(bid) {
				continue
			}
			if user, ok := d.users[bid.UserID]; ok {
				bid.User = &user
			}
			result = append(result, bid)
		}
		slices.SortFunc(result, func(a, b models.Bid) int {
			if newestFirst {
				return bytes.Compare(b.ID[:], a.ID[:])
			}
			return bytes.Compare(a.ID[:], b.ID[:])
		})
		return nil
	})
	return result, err
}

func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var result *models.User
	err := r.view(ctx, func(d *data) error {
		if user, ok := lo.Find(lo.Values(d.users), func(u models.User) bool {
			return u.Username == username
		}); ok {
			result = &user
		}
		return nil
	})
	return result, err
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var result *models.User
	err := r.view(ctx, func(d *data) error {
		if user, ok := d.users[id]; ok {
			result = &user
		}
		return nil
	})
	return result, err
}

func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	const op = "CreateUser"
	return r.view(ctx, func(d *data) error {
		if lo.ContainsBy(lo.Values(d.users), func(u models.User) bool { return u.Username == user.Username }) {
			return fmt.Errorf("[%s] username=%s, err=%w", op, user.Username, ErrDuplicateUsername)
		}
		if user.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			user.ID = id
		}
		if user.Role == "" {
			user.Role = models.RoleUser
		}
		user.CreatedAt = time.Now()
		d.users[user.ID] = *user
		return nil
	})
}
