package converter

import (
	"fmt"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// ToDomain переводит строку таблицы products в товар.
func ToDomain(m *ProductModel) (*domain.Product, error) {
	price, err := decimal.NewFromString(m.Price)
	if err != nil {
		return nil, fmt.Errorf("product %s: price %q: %w", m.ID, m.Price, err)
	}

	discount, err := decimal.NewFromString(m.DiscountPercentage)
	if err != nil {
		return nil, fmt.Errorf("product %s: discount %q: %w", m.ID, m.DiscountPercentage, err)
	}

	var tags []string
	if len(m.Tags) > 0 {
		tags = m.Tags
	}

	return domain.NewProduct(m.ID, m.Title, price, m.Description, discount, m.ImageURL, tags), nil
}
