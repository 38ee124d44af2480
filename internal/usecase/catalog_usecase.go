package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

// CatalogUseCase отвечает за витрину: выдачу товаров и категорий,
// а также административное управление каталогом.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	cacheRepo    CacheRepository
	txm          TxManager
	logger       logger.Logger
}

func NewCatalogUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	cacheRepo CacheRepository,
	txm TxManager,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cacheRepo:    cacheRepo,
		txm:          txm,
		logger:       logger,
	}
}

// ListProducts возвращает страницу каталога, опционально по категории.
func (c *CatalogUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "CatalogUseCase.ListProducts"

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	if req.CategoryID != "" {
		if _, err := c.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	products, total, err := c.productRepo.List(ctx, req.CategoryID, limit, offset)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ListProductsRes{
		Products: NewProductCards(products),
		Total:    total,
	}, nil
}

func (c *CatalogUseCase) ListFeatured(ctx context.Context) ([]ProductCard, error) {
	const op = "CatalogUseCase.ListFeatured"

	products, err := c.productRepo.ListFeatured(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewProductCards(products), nil
}

func (c *CatalogUseCase) ListTrending(ctx context.Context) ([]ProductCard, error) {
	const op = "CatalogUseCase.ListTrending"

	products, err := c.productRepo.ListTrending(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewProductCards(products), nil
}

// GetProductBySlug отдаёт карточку товара: сперва из кэша, при промахе —
// из БД с фоновым прогревом кэша.
func (c *CatalogUseCase) GetProductBySlug(ctx context.Context, slug string) (*ProductCard, error) {
	const op = "CatalogUseCase.GetProductBySlug"

	if card, err := c.cacheRepo.GetProduct(ctx, slug); err == nil && card != nil {
		return card, nil
	}

	product, err := c.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	card := NewProductCard(product)

	// Фоновое добавление карточки в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetProduct(bgCtx, card); err != nil {
			c.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return card, nil
}

func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]CategoryRes, error) {
	const op = "CatalogUseCase.ListCategories"

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := make([]CategoryRes, 0, len(categories))
	for i := range categories {
		res = append(res, NewCategoryRes(&categories[i]))
	}

	return res, nil
}

// SaveProduct идемпотентно создаёт или обновляет товар по slug.
// Производные поля rating/review_count при обновлении не трогаются.
func (c *CatalogUseCase) SaveProduct(ctx context.Context, req *SaveProductReq) (*ProductCard, error) {
	const op = "CatalogUseCase.SaveProduct"

	var err error
	err = c.validateProduct(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if _, err = c.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
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

	product, err := c.productRepo.Upsert(ctx, &domain.Product{
		Slug:          strings.TrimSpace(req.Slug),
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		CategoryID:    req.CategoryID,
		Featured:      req.Featured,
		Trending:      req.Trending,
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старых данных товара
	if err := c.cacheRepo.DeleteProducts(ctx, []string{product.Slug}); err != nil {
		c.logger.Warnf("Failed to delete product from cache: %v", e.Wrap(op, err))
	}

	return NewProductCard(product), nil
}

// DeleteProduct удаляет товар вместе с его отзывами и позициями корзин.
func (c *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "CatalogUseCase.DeleteProduct"

	var err error
	product, err := c.productRepo.GetByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	ctx, tx, err := c.txm.Begin(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	err = c.productRepo.Delete(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := c.cacheRepo.DeleteProducts(ctx, []string{product.Slug}); err != nil {
		c.logger.Warnf("Failed to delete product from cache: %v", e.Wrap(op, err))
	}

	return nil
}

func (c *CatalogUseCase) validateProduct(req *SaveProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if strings.TrimSpace(req.Slug) == "" {
		return e.ErrProductSlugRequired
	}

	if req.Price <= 0 {
		return e.ErrInvalidPrice
	}

	if req.OriginalPrice != nil && *req.OriginalPrice <= 0 {
		return e.ErrInvalidPrice
	}

	return nil
}
