package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"auction/bidding"
	"auction/models"
)

type seedProduct struct {
	owner       string
	title       string
	description string
	startPrice  decimal.Decimal
}

var (
	seedUsers = []models.User{
		{Username: "adminTest", Role: models.RoleAdmin},
		{Username: "userTest", Role: models.RoleUser},
	}
	seedProducts = []seedProduct{
		{owner: "adminTest", title: "Product 1", description: "This is the first product.", startPrice: decimal.NewFromInt(100)},
		{owner: "userTest", title: "Product 2", description: "This is the second product.", startPrice: decimal.NewFromInt(200)},
	}
)

// Seed 建立測試用的使用者與商品，已存在的資料不會重複建立
// 沒有任何出價時目前價格必須等於起標價，所以種子商品的目前價格就是起標價
func (s *Service) Seed(ctx context.Context) error {
	const op = "Seed"
	for _, user := range seedUsers {
		existing, err := s.catalog.FindUserByUsername(ctx, user.Username)
		if err != nil {
			return fmt.Errorf("[%s] Fail to find user, username=%s, err=%w", op, user.Username, errors.Join(bidding.ErrStorage, err))
		}
		if existing != nil {
			continue
		}
		if err := s.catalog.CreateUser(ctx, &user); err != nil {
			return fmt.Errorf("[%s] Fail to create user, username=%s, err=%w", op, user.Username, errors.Join(bidding.ErrStorage, err))
		}
		s.logger.Info("Seed user created", slog.String("username", user.Username), slog.String("role", string(user.Role)))
	}

	count, err := s.catalog.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("[%s] Fail to count products, err=%w", op, errors.Join(bidding.ErrStorage, err))
	}
	if count > 0 {
		return nil
	}
	for _, p := range seedProducts {
		if _, err := s.Create(ctx, p.owner, CreateRequest{
			Title:       p.title,
			Description: p.description,
			StartPrice:  p.startPrice,
			Published:   true,
		}); err != nil {
			return fmt.Errorf("[%s] Fail to create product, title=%s, err=%w", op, p.title, err)
		}
	}
	return nil
}
