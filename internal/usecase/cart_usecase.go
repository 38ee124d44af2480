package usecase

import (
	"context"

	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

// CartUseCase хранит серверную корзину пользователя.
type CartUseCase struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	txm         TxManager
	logger      logger.Logger
}

func NewCartUC(
	cartRepo CartRepository,
	productRepo ProductRepository,
	txm TxManager,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		txm:         txm,
		logger:      logger,
	}
}

// GetCart возвращает корзину пользователя с актуальными данными товаров.
func (c *CartUseCase) GetCart(ctx context.Context, userID int64) ([]CartLine, error) {
	const op = "CartUseCase.GetCart"

	lines, err := c.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return lines, nil
}

// SetCart полностью замещает корзину пользователя переданным набором
// позиций. Позиции с несуществующими товарами отклоняются целиком.
func (c *CartUseCase) SetCart(ctx context.Context, req *SetCartReq) ([]CartLine, error) {
	const op = "CartUseCase.SetCart"

	var err error
	items := make([]domain.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			continue
		}

		items = append(items, domain.CartItem{
			UserID:    req.UserID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	err = c.checkProductsExist(ctx, items)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := c.txm.Begin(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	// Блокировка текущих строк сериализует замену корзины с оформлением заказа.
	_, err = c.cartRepo.ListByUserForUpdate(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = c.cartRepo.DeleteByUser(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(items) > 0 {
		err = c.cartRepo.CreateMany(ctx, items)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	lines, err := c.cartRepo.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return lines, nil
}

func (c *CartUseCase) checkProductsExist(ctx context.Context, items []domain.CartItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := c.productRepo.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}

	known := make(map[int64]struct{}, len(products))
	for _, p := range products {
		known[p.ID] = struct{}{}
	}

	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return e.ErrProductNotFound
		}
	}

	return nil
}
