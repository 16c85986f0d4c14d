package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

const backgroundCacheTimeout = 500 * time.Millisecond

// ProductGrid держит снимок товаров одной активации витрины.
// Снимок загружается один раз при Mount; ошибка загрузки логируется,
// а предыдущий снимок (пустой при первой загрузке) сохраняется.
type ProductGrid struct {
	store  ContentStore
	cache  ProductCache
	logger logger.Logger

	once sync.Once

	mu       sync.RWMutex
	snapshot []domain.Product
	err      error
	mounted  bool
}

func NewProductGrid(store ContentStore, cache ProductCache, logger logger.Logger) *ProductGrid {
	return &ProductGrid{
		store:    store,
		cache:    cache,
		logger:   logger,
		snapshot: []domain.Product{},
		mounted:  true,
	}
}

// Mount выполняет единственный запрос снимка для этой активации.
// Повторные вызовы ничего не делают.
func (g *ProductGrid) Mount(ctx context.Context) {
	g.once.Do(func() {
		g.load(ctx)
	})
}

// Refresh повторно запрашивает снимок с той же политикой ошибок, что и Mount.
func (g *ProductGrid) Refresh(ctx context.Context) {
	g.load(ctx)
}

// Unmount завершает активацию: загрузка, завершившаяся позже, не изменит состояние.
func (g *ProductGrid) Unmount() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mounted = false
}

// Products возвращает копию текущего снимка.
func (g *ProductGrid) Products() []domain.Product {
	g.mu.RLock()
	defer g.mu.RUnlock()

	res := make([]domain.Product, len(g.snapshot))
	for i, p := range g.snapshot {
		res[i] = p.Clone()
	}

	return res
}

// Err возвращает ошибку последней загрузки или nil.
func (g *ProductGrid) Err() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.err
}

func (g *ProductGrid) isMounted() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mounted
}

func (g *ProductGrid) load(ctx context.Context) {
	const op = "ProductGrid.load"

	if !g.isMounted() {
		return
	}

	records, err := g.store.FetchAllProducts(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.mounted {
		g.logger.Debugf("%s: grid unmounted before fetch completed, result dropped", op)
		return
	}

	if err != nil {
		g.err = e.Wrap(op, fmt.Errorf("%w: %w", e.ErrFetchFailure, err))
		g.logger.Errorf(g.err, "Error fetching products")
		return
	}

	snapshot, rejected := domain.BuildSnapshot(records)
	for _, r := range rejected {
		g.logger.Warnf("%s: skipping product record %q: %v", op, r.ID, r.Err)
	}

	g.snapshot = snapshot
	g.err = nil

	g.cacheInBackground(snapshot)
}

// cacheInBackground кладёт снимок в кэш, не задерживая отрисовку.
func (g *ProductGrid) cacheInBackground(snapshot []domain.Product) {
	const op = "ProductGrid.cacheInBackground"

	if g.cache == nil || len(snapshot) == 0 {
		return
	}

	products := make([]domain.Product, len(snapshot))
	for i, p := range snapshot {
		products[i] = p.Clone()
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), backgroundCacheTimeout)
		defer cancel()

		if err := g.cache.SetProducts(bgCtx, products); err != nil {
			g.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
		}
	}()
}
