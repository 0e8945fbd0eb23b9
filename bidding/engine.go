package bidding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"auction/models"
)

type engineOptions struct {
	logger      *slog.Logger
	locker      ILocker
	lockTimeout time.Duration
}

type EngineOption func(*engineOptions)

// WithEngineLogger 設置日誌記錄器
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithEngineLocker 設置商品層級的分散式鎖，未設置時只依賴商品版本號檢查
func WithEngineLocker(locker ILocker) EngineOption {
	return func(o *engineOptions) {
		o.locker = locker
	}
}

// WithEngineLockTimeout 設置持有商品鎖的操作(含等待鎖)最長時間
func WithEngineLockTimeout(d time.Duration) EngineOption {
	return func(o *engineOptions) {
		o.lockTimeout = d
	}
}

// Engine 負責出價與取消出價，並維持 商品目前價格 == Resolve(有效出價) 的不變量
type Engine struct {
	repo    IRepository
	logger  *slog.Logger
	options engineOptions
}

func NewEngine(repo IRepository, opts ...EngineOption) (*Engine, error) {
	if repo == nil {
		return nil, errors.New("repository cannot be nil")
	}

	// 默認選項
	options := engineOptions{
		logger:      slog.Default(),
		lockTimeout: 10 * time.Second,
	}

	// 應用自定義選項
	for _, opt := range opts {
		opt(&options)
	}

	return &Engine{
		repo:    repo,
		logger:  options.logger.With(slog.String("caller", "BiddingEngine")),
		options: options,
	}, nil
}

// PlaceResult 是成功出價的結果
type PlaceResult struct {
	Bid   models.Bid
	Price decimal.Decimal
	// Outbid 是這次出價超越的其他使用者
	Outbid []uuid.UUID
}

// CancelStatus 表示取消出價的結果
type CancelStatus string

const (
	CancelStatusCancelled     CancelStatus = "cancelled"
	CancelStatusNoActiveBid   CancelStatus = "no-active-bid"
	CancelStatusNotHighestBid CancelStatus = "not-highest-bid"
	CancelStatusNotOwner      CancelStatus = "not-owner"
)

// CancelOutcome 是取消出價的結果，除了 Cancelled 以外都沒有任何寫入
type CancelOutcome struct {
	Status CancelStatus
	// Price 是處理後商品的目前價格
	Price decimal.Decimal
	// Bid 是被取消的出價，只有 Cancelled 時才有值
	Bid *models.Bid
}

// PlaceBid 為使用者在商品上出價
func (e *Engine) PlaceBid(ctx context.Context, userID, productID uuid.UUID, amount decimal.Decimal) (*PlaceResult, error) {
	const op = "PlaceBid"
	var result *PlaceResult
	err := e.withProductLock(ctx, op, productID, func(ctx context.Context) error {
		return e.repo.Transaction(ctx, func(repo IRepository) error {
			product, err := repo.GetProduct(ctx, productID)
			if err != nil {
				return storageError(op, "load product", err)
			}
			if product == nil {
				return fmt.Errorf("[%s] Product does not exist, productID=%s, err=%w", op, productID, ErrNotFound)
			}
			user, err := repo.GetUser(ctx, userID)
			if err != nil {
				return storageError(op, "load user", err)
			}
			if user == nil {
				return fmt.Errorf("[%s] User does not exist, userID=%s, err=%w", op, userID, ErrUserNotFound)
			}

			if err := Validate(*product, amount); err != nil {
				return fmt.Errorf("[%s] Bid rejected, err=%w", op, err)
			}

			bid := models.Bid{
				Amount:    amount,
				UserID:    userID,
				ProductID: productID,
			}
			if err := repo.SaveBid(ctx, &bid); err != nil {
				return storageError(op, "save bid", err)
			}
			bid.User = user

			// 目前價格一律由出價紀錄重新推導，不直接寫入出價金額
			active, err := repo.FindActiveBids(ctx, productID)
			if err != nil {
				return storageError(op, "load active bids", err)
			}
			product.CurrentPrice = Resolve(*product, active)
			if err := repo.SaveProduct(ctx, product); err != nil {
				return storageError(op, "save product", err)
			}

			below, err := repo.FindActiveBidsBelow(ctx, productID, amount)
			if err != nil {
				return storageError(op, "load outbid bids", err)
			}
			outbid := lo.Uniq(lo.FilterMap(below, func(b models.Bid, _ int) (uuid.UUID, bool) {
				return b.UserID, b.UserID != userID
			}))

			result = &PlaceResult{
				Bid:    bid,
				Price:  product.CurrentPrice,
				Outbid: outbid,
			}
			return nil
		})
	})
	if err != nil {
		return nil, classify(op, err)
	}

	e.logger.Info("Higher bid occurs",
		slog.String("user", userID.String()),
		slog.String("productID", productID.String()),
		slog.String("bid", amount.String()),
		slog.Int("outbid", len(result.Outbid)))
	return result, nil
}

// CancelBid 取消使用者在商品上的領先出價，並將價格退回下一個有效出價或起標價
func (e *Engine) CancelBid(ctx context.Context, productID uuid.UUID, username string) (*CancelOutcome, error) {
	const op = "CancelBid"
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("[%s] Missing username, err=%w", op, ErrUnauthenticated)
	}
	user, err := e.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, storageError(op, "find user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("[%s] Unknown user, username=%s, err=%w", op, username, ErrUnauthenticated)
	}

	var outcome *CancelOutcome
	err = e.withProductLock(ctx, op, productID, func(ctx context.Context) error {
		return e.repo.Transaction(ctx, func(repo IRepository) error {
			product, err := repo.GetProduct(ctx, productID)
			if err != nil {
				return storageError(op, "load product", err)
			}
			if product == nil {
				return fmt.Errorf("[%s] Product does not exist, productID=%s, err=%w", op, productID, ErrNotFound)
			}

			bids, err := repo.FindBidsByUserAndProduct(ctx, user.ID, productID)
			if err != nil {
				return storageError(op, "load user bids", err)
			}
			standing, ok := Leader(bids)
			if !ok {
				outcome = &CancelOutcome{Status: CancelStatusNoActiveBid, Price: product.CurrentPrice}
				return nil
			}
			// 只能取消目前的最高出價
			if !standing.Amount.Equal(product.CurrentPrice) {
				outcome = &CancelOutcome{Status: CancelStatusNotHighestBid, Price: product.CurrentPrice}
				return nil
			}
			if standing.User == nil || standing.User.Username != username {
				outcome = &CancelOutcome{Status: CancelStatusNotOwner, Price: product.CurrentPrice}
				return nil
			}

			standing.Cancelled = true
			if err := repo.SaveBid(ctx, &standing); err != nil {
				return storageError(op, "cancel bid", err)
			}

			active, err := repo.FindActiveBids(ctx, productID)
			if err != nil {
				return storageError(op, "load active bids", err)
			}
			product.CurrentPrice = Resolve(*product, active, standing.ID)
			if err := repo.SaveProduct(ctx, product); err != nil {
				return storageError(op, "save product", err)
			}

			outcome = &CancelOutcome{
				Status: CancelStatusCancelled,
				Price:  product.CurrentPrice,
				Bid:    &standing,
			}
			return nil
		})
	})
	if err != nil {
		return nil, classify(op, err)
	}

	e.logger.Info("Cancel bid",
		slog.String("user", username),
		slog.String("productID", productID.String()),
		slog.String("status", string(outcome.Status)),
		slog.String("price", outcome.Price.String()))
	return outcome, nil
}

// PreValidate 依商品目前狀態檢查出價金額，不做任何寫入
func (e *Engine) PreValidate(ctx context.Context, productID uuid.UUID, amount decimal.Decimal) error {
	const op = "PreValidate"
	product, err := e.getProduct(ctx, op, productID)
	if err != nil {
		return err
	}
	if err := Validate(*product, amount); err != nil {
		return fmt.Errorf("[%s] Bid rejected, err=%w", op, err)
	}
	return nil
}

// ResolvePrice 依出價紀錄重新計算商品目前價格
func (e *Engine) ResolvePrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	const op = "ResolvePrice"
	product, err := e.getProduct(ctx, op, productID)
	if err != nil {
		return decimal.Zero, err
	}
	active, err := e.repo.FindActiveBids(ctx, productID)
	if err != nil {
		return decimal.Zero, storageError(op, "load active bids", err)
	}
	return Resolve(*product, active), nil
}

// Leader 取得商品目前領先的出價，沒有有效出價時返回 nil
func (e *Engine) Leader(ctx context.Context, productID uuid.UUID) (*models.Bid, error) {
	const op = "Leader"
	if _, err := e.getProduct(ctx, op, productID); err != nil {
		return nil, err
	}
	active, err := e.repo.FindActiveBids(ctx, productID)
	if err != nil {
		return nil, storageError(op, "load active bids", err)
	}
	leader, ok := Leader(active)
	if !ok {
		return nil, nil
	}
	return &leader, nil
}

// History 取得商品的出價紀錄(含已取消)，新的在前
func (e *Engine) History(ctx context.Context, productID uuid.UUID) ([]models.Bid, error) {
	const op = "History"
	if _, err := e.getProduct(ctx, op, productID); err != nil {
		return nil, err
	}
	bids, err := e.repo.FindBidsByProduct(ctx, productID)
	if err != nil {
		return nil, storageError(op, "load bids", err)
	}
	return bids, nil
}

func (e *Engine) getProduct(ctx context.Context, op string, productID uuid.UUID) (*models.Product, error) {
	product, err := e.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, storageError(op, "load product", err)
	}
	if product == nil {
		return nil, fmt.Errorf("[%s] Product does not exist, productID=%s, err=%w", op, productID, ErrNotFound)
	}
	return product, nil
}

// withProductLock 在商品鎖的保護下執行 fn，fn 收到的 context 會在失去鎖時被取消
func (e *Engine) withProductLock(ctx context.Context, op string, productID uuid.UUID, fn func(ctx context.Context) error) error {
	if e.options.locker == nil {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, e.options.lockTimeout)
	defer cancel()

	lockCtx, unlock, err := e.options.locker.Lock(ctx, productID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("[%s] Timeout waiting for product lock, productID=%s, err=%w", op, productID, errors.Join(ErrConflict, err))
		}
		return storageError(op, "acquire product lock", err)
	}
	defer unlock()
	return fn(lockCtx)
}

// classify 確保交易失敗一定落在已知的錯誤類別中
func classify(op string, err error) error {
	var invalid *InvalidBidError
	switch {
	case errors.As(err, &invalid),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrStorage),
		errors.Is(err, ErrConflict):
		return err
	}
	return storageError(op, "commit transaction", err)
}
