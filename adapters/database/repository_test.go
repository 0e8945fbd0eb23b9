package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"auction/bidding"
	"auction/models"
)

// setupTest 建立一個獨立的 sqlite 記憶體資料庫
func setupTest(t *testing.T) (*Repository, models.User, models.Product) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, Migrate(db))

	ctx := context.Background()
	repo := NewRepository(db)
	user := models.User{Username: "alice"}
	require.NoError(t, repo.CreateUser(ctx, &user))
	product := models.Product{
		Title:         "Vintage Camera",
		OwnerUsername: "alice",
		StartPrice:    decimal.NewFromInt(100),
		CurrentPrice:  decimal.NewFromInt(100),
	}
	require.NoError(t, repo.CreateProduct(ctx, &product))
	return repo, user, product
}

func TestRepository_Users(t *testing.T) {
	repo, user, _ := setupTest(t)
	ctx := context.Background()

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)

	found, err := repo.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	found, err = repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice", found.Username)

	missing, err := repo.FindUserByUsername(ctx, "bob")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.CreateUser(ctx, &models.User{Username: "alice"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRepository_Products(t *testing.T) {
	repo, _, product := setupTest(t)
	ctx := context.Background()

	second := models.Product{Title: "Camera lens", OwnerUsername: "alice", StartPrice: decimal.NewFromInt(50), CurrentPrice: decimal.NewFromInt(50)}
	require.NoError(t, repo.CreateProduct(ctx, &second))
	third := models.Product{Title: "Tripod", OwnerUsername: "alice", StartPrice: decimal.NewFromInt(20), CurrentPrice: decimal.NewFromInt(20)}
	require.NoError(t, repo.CreateProduct(ctx, &third))

	t.Run("search is case insensitive and newest first", func(t *testing.T) {
		found, err := repo.SearchProducts(ctx, "CAMERA")
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, second.ID, found[0].ID)
		assert.Equal(t, product.ID, found[1].ID)
	})

	t.Run("save product checks version", func(t *testing.T) {
		got, err := repo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		stale := *got

		got.CurrentPrice = decimal.NewFromInt(105)
		require.NoError(t, repo.SaveProduct(ctx, got))
		assert.Equal(t, stale.Version+1, got.Version)

		stale.CurrentPrice = decimal.NewFromInt(110)
		assert.ErrorIs(t, repo.SaveProduct(ctx, &stale), bidding.ErrConflict)

		stored, err := repo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(105).Equal(stored.CurrentPrice))
		assert.True(t, decimal.NewFromInt(100).Equal(stored.StartPrice))
	})

	t.Run("publish", func(t *testing.T) {
		require.NoError(t, repo.SetPublished(ctx, product.ID, true))
		got, err := repo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, got.Published)
	})

	t.Run("listing changes are kept when a bid commits", func(t *testing.T) {
		loaded, err := repo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		published := !loaded.Published

		require.NoError(t, repo.SetPublished(ctx, product.ID, published))
		loaded.CurrentPrice = loaded.CurrentPrice.Add(decimal.NewFromInt(5))
		assert.ErrorIs(t, repo.SaveProduct(ctx, loaded), bidding.ErrConflict)

		stored, err := repo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, published, stored.Published)

		require.NoError(t, repo.UpdateProduct(ctx, product.ID, "Renamed camera", "mint"))
		fresh, err := repo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		fresh.Title = "stale title"
		fresh.Published = !published
		fresh.CurrentPrice = fresh.CurrentPrice.Add(decimal.NewFromInt(5))
		require.NoError(t, repo.SaveProduct(ctx, fresh))

		stored, err = repo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed camera", stored.Title)
		assert.Equal(t, "mint", stored.Description)
		assert.Equal(t, published, stored.Published)
		assert.True(t, fresh.CurrentPrice.Equal(stored.CurrentPrice))
	})

	t.Run("soft delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteProduct(ctx, third.ID))
		got, err := repo.GetProduct(ctx, third.ID)
		assert.NoError(t, err)
		assert.Nil(t, got)

		count, err := repo.CountProducts(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})
}

func TestRepository_Bids(t *testing.T) {
	repo, user, product := setupTest(t)
	ctx := context.Background()

	first := models.Bid{Amount: decimal.NewFromInt(105), UserID: user.ID, ProductID: product.ID}
	require.NoError(t, repo.SaveBid(ctx, &first))
	second := models.Bid{Amount: decimal.NewFromInt(110), UserID: user.ID, ProductID: product.ID, User: &user}
	require.NoError(t, repo.SaveBid(ctx, &second))

	active, err := repo.FindActiveBids(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	require.NotNil(t, active[0].User)
	assert.Equal(t, "alice", active[0].User.Username)

	below, err := repo.FindActiveBidsBelow(ctx, product.ID, decimal.NewFromInt(110))
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.Equal(t, first.ID, below[0].ID)

	second.Cancelled = true
	require.NoError(t, repo.SaveBid(ctx, &second))
	active, err = repo.FindActiveBids(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	history, err := repo.FindBidsByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.True(t, history[0].Cancelled)

	err = repo.SaveBid(ctx, &models.Bid{ID: uuid.New(), Cancelled: true})
	assert.ErrorIs(t, err, ErrBidNotFound)
}

func TestRepository_Transaction(t *testing.T) {
	repo, user, product := setupTest(t)
	ctx := context.Background()
	errRollback := errors.New("rollback")

	err := repo.Transaction(ctx, func(tx bidding.IRepository) error {
		bid := models.Bid{Amount: decimal.NewFromInt(105), UserID: user.ID, ProductID: product.ID}
		if err := tx.SaveBid(ctx, &bid); err != nil {
			return err
		}
		return errRollback
	})
	assert.ErrorIs(t, err, errRollback)

	active, err := repo.FindActiveBids(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestRepository_WithEngine(t *testing.T) {
	repo, user, product := setupTest(t)
	ctx := context.Background()
	engine, err := bidding.NewEngine(repo)
	require.NoError(t, err)

	_, err = engine.PlaceBid(ctx, user.ID, product.ID, decimal.NewFromInt(105))
	require.NoError(t, err)
	result, err := engine.PlaceBid(ctx, user.ID, product.ID, decimal.NewFromInt(115))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(115).Equal(result.Price))

	outcome, err := engine.CancelBid(ctx, product.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, bidding.CancelStatusCancelled, outcome.Status)
	assert.True(t, decimal.NewFromInt(105).Equal(outcome.Price))

	stored, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(105).Equal(stored.CurrentPrice))
	assert.EqualValues(t, 3, stored.Version)
}
