package domain

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/shopspring/decimal"
)

var maxDiscount = decimal.NewFromInt(100)

// Product описывает товар каталога в том виде, в каком его отдаёт контент-хранилище.
// Витрина держит только снимок (snapshot) таких записей и никогда их не изменяет.
type Product struct {
	ID                 string
	Title              string
	Price              decimal.Decimal
	Description        string
	DiscountPercentage decimal.Decimal // 0 означает «без скидки»
	ImageURL           string
	Tags               []string
}

func NewProduct(id, title string, price decimal.Decimal, description string,
	discount decimal.Decimal, imageURL string, tags []string) *Product {
	return &Product{
		ID:                 id,
		Title:              title,
		Price:              price,
		Description:        description,
		DiscountPercentage: discount,
		ImageURL:           imageURL,
		Tags:               tags,
	}
}

// Validate проверяет инварианты товара.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: %w", e.ErrInvalidProduct, e.ErrEmptyProductID)
	}

	if p.Price.IsNegative() {
		return fmt.Errorf("%w: id %s: %w", e.ErrInvalidProduct, p.ID, e.ErrNegativePrice)
	}

	if p.DiscountPercentage.IsNegative() || p.DiscountPercentage.GreaterThan(maxDiscount) {
		return fmt.Errorf("%w: id %s: %w", e.ErrInvalidProduct, p.ID, e.ErrDiscountRange)
	}

	for i, tag := range p.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: id %s, tag #%d: %w", e.ErrInvalidProduct, p.ID, i, e.ErrEmptyTag)
		}
	}

	return nil
}

func (p *Product) HasDiscount() bool {
	return p.DiscountPercentage.IsPositive()
}

func (p *Product) HasTags() bool {
	return len(p.Tags) > 0
}

// Clone возвращает копию товара, не разделяющую срез тегов с оригиналом.
func (p Product) Clone() Product {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}
