package sanity

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// queryResponse — ответ Query API.
type queryResponse struct {
	Query  string          `json:"query"`
	Result []productRecord `json:"result"`
	MS     int             `json:"ms"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
}

// productRecord — запись товара из проекции ProductsQuery.
// Отсутствующие числовые поля приходят как null и трактуются как 0.
type productRecord struct {
	ID                 string              `json:"_id"`
	Title              string              `json:"title"`
	Price              decimal.NullDecimal `json:"price"`
	Description        string              `json:"description"`
	DiscountPercentage decimal.NullDecimal `json:"discountPercentage"`
	ImageURL           string              `json:"imageUrl"`
	Tags               []string            `json:"tags"`
}

func (r productRecord) toDomain() domain.Product {
	return *domain.NewProduct(
		r.ID,
		r.Title,
		r.Price.Decimal,
		r.Description,
		r.DiscountPercentage.Decimal,
		r.ImageURL,
		r.Tags,
	)
}

func toDomainProducts(records []productRecord) []domain.Product {
	res := make([]domain.Product, 0, len(records))
	for _, r := range records {
		res = append(res, r.toDomain())
	}

	return res
}
