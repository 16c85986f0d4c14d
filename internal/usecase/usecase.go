package usecase

import "context"

type StorefrontUC interface {
	ShowGrid(ctx context.Context) *GridPage
	AddToCart(ctx context.Context, cartID string, productID string) (string, error)
	GetProduct(ctx context.Context, id string) (*ProductDetail, error)
}
