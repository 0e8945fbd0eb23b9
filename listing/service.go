package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"

	"auction/bidding"
	"auction/models"
)

const (
	MaxTitleLength       = 128
	MaxDescriptionLength = 256
)

var (
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidListing = errors.New("invalid listing")
)

type serviceOptions struct {
	logger *slog.Logger
	policy *bluemonday.Policy
}

type ServiceOption func(*serviceOptions)

// WithServiceLogger 設置日誌記錄器
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// WithServicePolicy 設置商品描述使用的 HTML 過濾規則
func WithServicePolicy(policy *bluemonday.Policy) ServiceOption {
	return func(o *serviceOptions) {
		o.policy = policy
	}
}

// Service 負責商品的上架、編輯、查詢、刪除與公開狀態管理
type Service struct {
	catalog ICatalog
	logger  *slog.Logger
	options serviceOptions
}

func NewService(catalog ICatalog, opts ...ServiceOption) (*Service, error) {
	if catalog == nil {
		return nil, errors.New("catalog cannot be nil")
	}

	// 默認選項
	options := serviceOptions{
		logger: slog.Default(),
		policy: bluemonday.UGCPolicy(),
	}

	// 應用自定義選項
	for _, opt := range opts {
		opt(&options)
	}

	return &Service{
		catalog: catalog,
		logger:  options.logger.With(slog.String("caller", "ListingService")),
		options: options,
	}, nil
}

// CreateRequest 是上架商品的參數
type CreateRequest struct {
	Title       string
	Description string
	StartPrice  decimal.Decimal
	Published   bool
}

// Create 上架新商品，目前價格預設為起標價
func (s *Service) Create(ctx context.Context, owner string, req CreateRequest) (*models.Product, error) {
	const op = "Create"
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("[%s] Missing owner, err=%w", op, bidding.ErrUnauthenticated)
	}

	title, description, err := s.normalize(op, req.Title, req.Description)
	if err != nil {
		return nil, err
	}
	if !req.StartPrice.IsPositive() {
		return nil, fmt.Errorf("[%s] Start price must be positive, err=%w", op, ErrInvalidListing)
	}
	if !req.StartPrice.Equal(req.StartPrice.Round(2)) {
		return nil, fmt.Errorf("[%s] Start price must have at most 2 decimal places, err=%w", op, ErrInvalidListing)
	}

	product := models.Product{
		Title:         title,
		Description:   description,
		Published:     req.Published,
		OwnerUsername: owner,
		StartPrice:    req.StartPrice,
		CurrentPrice:  req.StartPrice,
	}
	if err := s.catalog.CreateProduct(ctx, &product); err != nil {
		return nil, fmt.Errorf("[%s] Fail to create product, err=%w", op, errors.Join(bidding.ErrStorage, err))
	}
	s.logger.Info("Product created",
		slog.String("productID", product.ID.String()),
		slog.String("owner", owner),
		slog.String("startPrice", product.StartPrice.String()))
	return &product, nil
}

// Get 取得商品
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	const op = "Get"
	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to find product, err=%w", op, errors.Join(bidding.ErrStorage, err))
	}
	if product == nil {
		return nil, fmt.Errorf("[%s] Product does not exist, productID=%s, err=%w", op, id, bidding.ErrNotFound)
	}
	return product, nil
}

// Search 以標題關鍵字(不分大小寫)搜尋商品
func (s *Service) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	const op = "Search"
	products, err := s.catalog.SearchProducts(ctx, strings.TrimSpace(keyword))
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to search products, err=%w", op, errors.Join(bidding.ErrStorage, err))
	}
	return products, nil
}

// CanEdit 判斷使用者是否可以編輯商品: 管理員或商品擁有者
func (s *Service) CanEdit(ctx context.Context, actor string, product models.Product) (bool, error) {
	const op = "CanEdit"
	if actor == "" {
		return false, nil
	}
	if actor == product.OwnerUsername {
		return true, nil
	}
	user, err := s.catalog.FindUserByUsername(ctx, actor)
	if err != nil {
		return false, fmt.Errorf("[%s] Fail to find user, err=%w", op, errors.Join(bidding.ErrStorage, err))
	}
	return user != nil && user.IsAdmin(), nil
}

// Delete 刪除商品，出價紀錄保留
func (s *Service) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	const op = "Delete"
	if _, err := s.editable(ctx, op, actor, id); err != nil {
		return err
	}
	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("[%s] Fail to delete product, err=%w", op, errors.Join(bidding.ErrStorage, err))
	}
	s.logger.Info("Product deleted", slog.String("productID", id.String()), slog.String("actor", actor))
	return nil
}

// SetPublished 更新商品的公開狀態
func (s *Service) SetPublished(ctx context.Context, actor string, id uuid.UUID, published bool) (*models.Product, error) {
	const op = "SetPublished"
	product, err := s.editable(ctx, op, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.SetPublished(ctx, id, published); err != nil {
		return nil, fmt.Errorf("[%s] Fail to update published status, err=%w", op, errors.Join(bidding.ErrStorage, err))
	}
	product.Published = published
	return product, nil
}

// Update 修改商品標題與描述，目前價格與出價紀錄不受影響
func (s *Service) Update(ctx context.Context, actor string, id uuid.UUID, title, description string) (*models.Product, error) {
	const op = "Update"
	title, description, err := s.normalize(op, title, description)
	if err != nil {
		return nil, err
	}
	if _, err := s.editable(ctx, op, actor, id); err != nil {
		return nil, err
	}
	if err := s.catalog.UpdateProduct(ctx, id, title, description); err != nil {
		return nil, fmt.Errorf("[%s] Fail to update product, err=%w", op, errors.Join(bidding.ErrStorage, err))
	}
	s.logger.Info("Product updated", slog.String("productID", id.String()), slog.String("actor", actor))
	return s.Get(ctx, id)
}

// normalize 修剪標題並過濾描述中的 HTML
func (s *Service) normalize(op, title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return "", "", fmt.Errorf("[%s] Title must be 1-%d characters, err=%w", op, MaxTitleLength, ErrInvalidListing)
	}
	description = strings.TrimSpace(s.options.policy.Sanitize(description))
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return "", "", fmt.Errorf("[%s] Description must be at most %d characters, err=%w", op, MaxDescriptionLength, ErrInvalidListing)
	}
	return title, description, nil
}

func (s *Service) editable(ctx context.Context, op, actor string, id uuid.UUID) (*models.Product, error) {
	if strings.TrimSpace(actor) == "" {
		return nil, fmt.Errorf("[%s] Missing actor, err=%w", op, bidding.ErrUnauthenticated)
	}
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.CanEdit(ctx, actor, *product)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("[%s] User cannot edit product, actor=%s, productID=%s, err=%w", op, actor, id, ErrForbidden)
	}
	return product, nil
}
