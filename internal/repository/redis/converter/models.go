package converter

// ProductRedisModel — JSON-представление товара в Redis.
// Цена и скидка хранятся строками, чтобы не терять точность decimal.
type ProductRedisModel struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Price              string   `json:"price"`
	Description        string   `json:"description"`
	DiscountPercentage string   `json:"discount_percentage"`
	ImageURL           string   `json:"image_url"`
	Tags               []string `json:"tags,omitempty"`
}
