package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// CacheRepo кэширует последний снимок товаров по ID.
type CacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProduct возвращает товар из кэша или (nil, nil) при промахе.
func (c *CacheRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := c.productKey(id)

	data, err := c.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.ProductRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Redis unmarshal failed, dropping key %s: %v", key, e.Wrap(whereami.WhereAmI(), err))
		c.deleteKey(key)
		return nil, nil
	}

	if model.ID != id {
		c.logger.Warnf("Cache ID mismatch: key_id: %s, model_id: %s", id, model.ID)
		c.deleteKey(key)
		return nil, nil
	}

	product, err := converter.ToDomain(&model)
	if err != nil {
		c.logger.Warnf("Cached product %s is corrupted: %v", id, e.Wrap(whereami.WhereAmI(), err))
		c.deleteKey(key)
		return nil, nil
	}

	return product, nil
}

// SetProducts кэширует товары одним пайплайном. TTL каждого ключа размыт джиттером.
// Ошибки сериализации отдельных товаров логируются и пропускаются.
func (c *CacheRepo) SetProducts(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	pipeline := c.client.Client.Pipeline()
	for _, model := range converter.ToArrRedisModel(products) {
		data, err := json.Marshal(model)
		if err != nil {
			c.logger.Warnf("Failed to marshal product for caching (Product ID: %s): %v", model.ID, e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		pipeline.Set(ctx, c.productKey(model.ID), data, jitter.Duration(c.cfg.ProductTTL, jitter.DefaultJitter))
	}

	if _, err := pipeline.Exec(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CacheRepo) deleteKey(key string) {
	if err := c.client.Client.Del(context.Background(), key).Err(); err != nil {
		c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

// productKey возвращает Redis-ключ для одного товара
func (c *CacheRepo) productKey(id string) string {
	return fmt.Sprintf("storefront:product:%s", id)
}
