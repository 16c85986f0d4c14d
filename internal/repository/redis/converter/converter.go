package converter

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// ToRedisModel переводит товар в модель кэша.
func ToRedisModel(p *domain.Product) *ProductRedisModel {
	return &ProductRedisModel{
		ID:                 p.ID,
		Title:              p.Title,
		Price:              p.Price.String(),
		Description:        p.Description,
		DiscountPercentage: p.DiscountPercentage.String(),
		ImageURL:           p.ImageURL,
		Tags:               p.Tags,
	}
}

// ToDomain восстанавливает товар из модели кэша.
func ToDomain(m *ProductRedisModel) (*domain.Product, error) {
	price, err := decimal.NewFromString(m.Price)
	if err != nil {
		return nil, err
	}

	discount, err := decimal.NewFromString(m.DiscountPercentage)
	if err != nil {
		return nil, err
	}

	return domain.NewProduct(m.ID, m.Title, price, m.Description, discount, m.ImageURL, m.Tags), nil
}

func ToArrRedisModel(products []domain.Product) []ProductRedisModel {
	res := make([]ProductRedisModel, 0, len(products))
	for i := range products {
		res = append(res, *ToRedisModel(&products[i]))
	}

	return res
}
