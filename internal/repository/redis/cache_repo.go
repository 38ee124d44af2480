package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	r "github.com/redis/go-redis/v9"
	"github.com/jimlawless/whereami"
	"github.com/soil2spoon/go-backend/internal/cfg"
	"github.com/soil2spoon/go-backend/internal/repository/redis/converter"
	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/clients"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

// CacheRepo кэширует карточки товаров в Redis по slug.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductCardConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductCardConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProduct возвращает закэшированную карточку товара. Промах кэша —
// это (nil, nil), а не ошибка.
func (c *CacheRepo) GetProduct(ctx context.Context, slug string) (*usecase.ProductCard, error) {
	data, err := c.client.Client.Get(ctx, c.productKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil // cache miss
		}

		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.ProductCardRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := c.client.Client.Del(context.Background(), c.productKey(slug)).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}

		return nil, nil // cache miss
	}

	if model.Slug != slug {
		c.logger.Warnf("Cache slug mismatch: key_slug: %s, model_slug: %s", slug, model.Slug)
		if err := c.client.Client.Del(context.Background(), c.productKey(slug)).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}

		return nil, nil // cache miss
	}

	return c.conv.ToUseCase(&model), nil
}

// SetProduct кэширует карточку товара с заданным TTL. Ошибки записи
// логируются и не прерывают вызывающего.
func (c *CacheRepo) SetProduct(ctx context.Context, card *usecase.ProductCard) error {
	model := c.conv.ToRedisModel(card)

	data, err := json.Marshal(model)
	if err != nil {
		c.logger.Warnf("Failed to marshal product for caching (slug: %s): %v", card.Slug, e.Wrap(whereami.WhereAmI(), err))
		return nil
	}

	if err := c.client.Client.Set(ctx, c.productKey(card.Slug), data, c.cfg.ProductTTL).Err(); err != nil {
		c.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// DeleteProducts удаляет карточки товаров из кэша по slug.
func (c *CacheRepo) DeleteProducts(ctx context.Context, slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}

	keys := make([]string, len(slugs))
	for i, slug := range slugs {
		keys[i] = c.productKey(slug)
	}

	if err := c.client.Client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// productKey возвращает Redis-ключ карточки товара.
func (c *CacheRepo) productKey(slug string) string {
	return fmt.Sprintf("product:%s", slug)
}
