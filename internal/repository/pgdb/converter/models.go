package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
// Числовые колонки читаются как текст, чтобы не терять точность.
type ProductModel struct {
	ID                 string    `db:"id"`
	Title              string    `db:"title"`
	Price              string    `db:"price"`
	Description        string    `db:"description"`
	DiscountPercentage string    `db:"discount_percentage"`
	ImageURL           string    `db:"image_url"`
	Tags               []string  `db:"tags"`
	Position           int32     `db:"position"`
	CreatedAt          time.Time `db:"created_at"`
}
