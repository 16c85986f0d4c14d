package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// StorefrontUseCase реализует сценарии витрины: сетку товаров, страницу товара и добавление в корзину.
type StorefrontUseCase struct {
	store  ContentStore
	cache  ProductCache
	cart   CartStore
	images ImageResolver
	logger logger.Logger
}

func NewStorefrontUC(
	store ContentStore,
	cache ProductCache,
	cart CartStore,
	images ImageResolver,
	logger logger.Logger,
) *StorefrontUseCase {
	return &StorefrontUseCase{
		store:  store,
		cache:  cache,
		cart:   cart,
		images: images,
		logger: logger,
	}
}

// ShowGrid монтирует сетку, загружает снимок и возвращает карточки.
// Ошибка загрузки не пробрасывается: страница помечается как Degraded.
func (s *StorefrontUseCase) ShowGrid(ctx context.Context) *GridPage {
	grid := NewProductGrid(s.store, s.cache, s.logger)
	defer grid.Unmount()

	grid.Mount(ctx)

	return NewGridPage(RenderCards(ctx, grid.Products(), s.images), grid.Err() != nil)
}

// AddToCart передаёт полную запись товара в корзину и возвращает путь страницы товара.
// Ошибка корзины логируется и не мешает навигации.
func (s *StorefrontUseCase) AddToCart(ctx context.Context, cartID string, productID string) (string, error) {
	const op = "StorefrontUseCase.AddToCart"

	if strings.TrimSpace(cartID) == "" {
		return "", e.Wrap(op, e.ErrEmptyCartID)
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	if err := s.cart.AddItem(ctx, cartID, *product); err != nil {
		s.logger.Warnf("Failed to add product %s to cart %s: %v", product.ID, cartID, e.Wrap(op, err))
	}

	return DetailPath(product.ID), nil
}

// GetProduct возвращает модель страницы товара.
func (s *StorefrontUseCase) GetProduct(ctx context.Context, id string) (*ProductDetail, error) {
	const op = "StorefrontUseCase.GetProduct"

	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ProductDetail{
		Card:        RenderCard(ctx, *product, s.images, DetailImageWidth, DetailImageHeight),
		Description: product.Description,
		Product:     *product,
	}, nil
}

// findProduct ищет товар сначала в кэше, затем в свежем снимке хранилища.
func (s *StorefrontUseCase) findProduct(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, e.ErrProductNotFound
	}

	if s.cache != nil {
		cached, err := s.cache.GetProduct(ctx, id)
		if err != nil {
			s.logger.Warnf("Product cache lookup failed, falling back to content store: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	grid := NewProductGrid(s.store, s.cache, s.logger)
	defer grid.Unmount()

	grid.Mount(ctx)
	if err := grid.Err(); err != nil {
		return nil, err
	}

	for _, p := range grid.Products() {
		if p.ID == id {
			return &p, nil
		}
	}

	return nil, e.ErrProductNotFound
}
