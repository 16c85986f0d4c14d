package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// ContentStore — узкий read-only порт внешнего контент-хранилища.
type ContentStore interface {
	// FetchAllProducts возвращает все товары в порядке ответа хранилища.
	FetchAllProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductCache хранит последний снимок товаров для поиска по ID.
type ProductCache interface {
	SetProducts(ctx context.Context, products []domain.Product) error
	// GetProduct возвращает (nil, nil) при промахе кэша.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}
