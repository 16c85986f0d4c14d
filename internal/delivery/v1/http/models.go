package http

import "github.com/DRSN-tech/storefront/internal/usecase"

// ProductCardResponse — карточка товара в JSON API.
type ProductCardResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	ImageURL      string   `json:"image_url"`
	Summary       string   `json:"summary"`
	Price         string   `json:"price"`
	DiscountBadge string   `json:"discount_badge,omitempty"`
	Tags          []string `json:"tags"`
	DetailPath    string   `json:"detail_path"`
}

// ProductListResponse — ответ списка товаров.
type ProductListResponse struct {
	Products []ProductCardResponse `json:"products"`
	Degraded bool                  `json:"degraded"`
}

// ProductDetailResponse — ответ страницы товара.
type ProductDetailResponse struct {
	ProductCardResponse
	Description        string `json:"description"`
	DiscountPercentage string `json:"discount_percentage"`
}

func toCardResponse(c usecase.Card) ProductCardResponse {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}

	return ProductCardResponse{
		ID:            c.ID,
		Title:         c.Title,
		ImageURL:      c.ImageURL,
		Summary:       c.Summary,
		Price:         c.Price,
		DiscountBadge: c.DiscountBadge,
		Tags:          tags,
		DetailPath:    c.DetailPath,
	}
}

func toListResponse(page *usecase.GridPage) *ProductListResponse {
	products := make([]ProductCardResponse, 0, len(page.Cards))
	for _, c := range page.Cards {
		products = append(products, toCardResponse(c))
	}

	return &ProductListResponse{
		Products: products,
		Degraded: page.Degraded,
	}
}

func toDetailResponse(d *usecase.ProductDetail) *ProductDetailResponse {
	return &ProductDetailResponse{
		ProductCardResponse: toCardResponse(d.Card),
		Description:         d.Description,
		DiscountPercentage:  d.Product.DiscountPercentage.String(),
	}
}
