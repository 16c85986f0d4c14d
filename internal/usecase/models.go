package usecase

import "github.com/DRSN-tech/storefront/internal/domain"

const (
	// CardImageWidth и CardImageHeight — размер изображения в карточке.
	CardImageWidth  = 300
	CardImageHeight = 300

	// DetailImageWidth и DetailImageHeight — размер изображения на странице товара.
	DetailImageWidth  = 600
	DetailImageHeight = 600
)

// Card — модель отрисовки одной карточки товара.
type Card struct {
	ID            string
	Title         string
	ImageURL      string
	ImageAlt      string
	ImageWidth    int
	ImageHeight   int
	Summary       string
	Price         string // "$45"
	DiscountBadge string // "10% OFF", пусто если скидки нет
	Tags          []string
	DetailPath    string
	AddToCartPath string
}

func (c Card) HasDiscount() bool {
	return c.DiscountBadge != ""
}

func (c Card) HasTags() bool {
	return len(c.Tags) > 0
}

// GridPage — модель страницы каталога.
type GridPage struct {
	Cards []Card
	// Degraded выставляется, если загрузка снимка завершилась ошибкой.
	Degraded bool
}

func (g *GridPage) Empty() bool {
	return len(g.Cards) == 0
}

// ProductDetail — модель страницы товара.
type ProductDetail struct {
	Card
	Description string
	Product     domain.Product
}

func NewGridPage(cards []Card, degraded bool) *GridPage {
	return &GridPage{
		Cards:    cards,
		Degraded: degraded,
	}
}
