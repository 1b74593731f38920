package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Product facts change rarely; a day of staleness is acceptable.
const productCacheTTL = 24 * time.Hour

// CachedProductLookup is a read-through cache in front of a ProductLookup.
// A nil redis client disables caching entirely and every call goes straight
// to the upstream. Cache failures are logged and treated as misses.
type CachedProductLookup struct {
	upstream ProductLookup
	redis    *redis.Client
}

var _ ProductLookup = (*CachedProductLookup)(nil)

// NewCachedProductLookup creates a new CachedProductLookup instance
func NewCachedProductLookup(upstream ProductLookup, client *redis.Client) *CachedProductLookup {
	return &CachedProductLookup{upstream: upstream, redis: client}
}

// ByBarcode returns the cached product for a barcode, or fetches and caches
// the upstream answer.
func (c *CachedProductLookup) ByBarcode(ctx context.Context, barcode string) (*Product, error) {
	key := fmt.Sprintf("product:barcode:%s", barcode)
	if cached := c.get(ctx, key); cached != nil {
		return cached, nil
	}

	product, err := c.upstream.ByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, product)
	return product, nil
}

// Search returns the cached first hit for a query, or fetches and caches it.
func (c *CachedProductLookup) Search(ctx context.Context, query string) (*Product, error) {
	key := fmt.Sprintf("product:search:%s", query)
	if cached := c.get(ctx, key); cached != nil {
		return cached, nil
	}

	product, err := c.upstream.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, product)
	return product, nil
}

func (c *CachedProductLookup) get(ctx context.Context, key string) *Product {
	if c.redis == nil {
		return nil
	}
	raw, err := c.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		log.Printf("product cache: get %s: %v", key, err)
		return nil
	}
	var product Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		log.Printf("product cache: decode %s: %v", key, err)
		return nil
	}
	return &product
}

func (c *CachedProductLookup) set(ctx context.Context, key string, product *Product) {
	if c.redis == nil || product == nil {
		return
	}
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, raw, productCacheTTL).Err(); err != nil {
		log.Printf("product cache: set %s: %v", key, err)
	}
}
