package usecase

import (
	"context"
	"net/url"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/summary"
	"github.com/shopspring/decimal"
)

// RenderCards проецирует снимок в карточки, сохраняя количество и порядок.
func RenderCards(ctx context.Context, products []domain.Product, images ImageResolver) []Card {
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, RenderCard(ctx, p, images, CardImageWidth, CardImageHeight))
	}

	return cards
}

// RenderCard строит карточку одного товара с изображением заданного размера.
func RenderCard(ctx context.Context, p domain.Product, images ImageResolver, width, height int) Card {
	card := Card{
		ID:            p.ID,
		Title:         p.Title,
		ImageURL:      p.ImageURL,
		ImageAlt:      p.Title,
		ImageWidth:    width,
		ImageHeight:   height,
		Summary:       summary.Summarize(p.Description),
		Price:         FormatPrice(p.Price),
		DiscountBadge: FormatDiscount(p.DiscountPercentage),
		DetailPath:    DetailPath(p.ID),
		AddToCartPath: AddToCartPath(p.ID),
	}

	if images != nil {
		card.ImageURL = images.Resolve(ctx, p.ImageURL, width, height)
	}

	if p.HasTags() {
		card.Tags = append([]string(nil), p.Tags...)
	}

	return card
}

// FormatPrice форматирует цену как "$45" или "$45.5".
func FormatPrice(price decimal.Decimal) string {
	return "$" + price.String()
}

// FormatDiscount возвращает "10% OFF" или пустую строку, если скидки нет.
func FormatDiscount(discount decimal.Decimal) string {
	if !discount.IsPositive() {
		return ""
	}
	return discount.String() + "% OFF"
}

func DetailPath(id string) string {
	return "/products/" + url.PathEscape(id)
}

func AddToCartPath(id string) string {
	return DetailPath(id) + "/cart"
}
