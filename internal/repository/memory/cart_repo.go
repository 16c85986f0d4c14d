package memory

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
)

// CartItem — товар, добавленный в корзину.
type CartItem struct {
	Product domain.Product
	AddedAt time.Time
}

// CartRepo хранит корзины в памяти процесса. Используется, когда брокер не настроен.
type CartRepo struct {
	mu    sync.RWMutex
	carts map[string][]CartItem
	now   func() time.Time
}

func NewCartRepo() *CartRepo {
	return &CartRepo{
		carts: make(map[string][]CartItem),
		now:   time.Now,
	}
}

// AddItem добавляет копию товара в корзину cartID.
func (r *CartRepo) AddItem(ctx context.Context, cartID string, product domain.Product) error {
	const op = "CartRepo.AddItem"

	if cartID == "" {
		return e.Wrap(op, e.ErrEmptyCartID)
	}
	if err := ctx.Err(); err != nil {
		return e.Wrap(op, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cartID] = append(r.carts[cartID], CartItem{
		Product: product.Clone(),
		AddedAt: r.now(),
	})

	return nil
}

// Items возвращает копию содержимого корзины в порядке добавления.
func (r *CartRepo) Items(cartID string) []CartItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.carts[cartID]
	out := make([]CartItem, 0, len(items))
	for _, item := range items {
		out = append(out, CartItem{Product: item.Product.Clone(), AddedAt: item.AddedAt})
	}

	return out
}
