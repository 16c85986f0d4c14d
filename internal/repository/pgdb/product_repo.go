package pgdb

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"
)

// Querier — часть pgxpool.Pool, нужная репозиторию.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ProductRepo реализует контент-хранилище товаров поверх PostgreSQL.
type ProductRepo struct {
	pool Querier
}

func NewProductRepo(pool Querier) *ProductRepo {
	return &ProductRepo{
		pool: pool,
	}
}

// FetchAllProducts возвращает все неархивные товары в порядке витрины.
func (p *ProductRepo) FetchAllProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT
			id, title, price::text, description, discount_percentage::text,
			image_url, tags, position, created_at
		FROM products
		WHERE NOT is_archived
		ORDER BY position, created_at, id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Title, &model.Price, &model.Description, &model.DiscountPercentage,
			&model.ImageURL, &model.Tags, &model.Position, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		product, err := converter.ToDomain(&model)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
