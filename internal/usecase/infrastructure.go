package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// CartStore — внешний коллаборатор корзины. Передаётся в use case явно при создании.
type CartStore interface {
	AddItem(ctx context.Context, cartID string, product domain.Product) error
}

// ImageResolver превращает ссылку на изображение товара в URL для отрисовки заданного размера.
// Для пустой ссылки возвращает плейсхолдер.
type ImageResolver interface {
	Resolve(ctx context.Context, rawURL string, width, height int) string
}
