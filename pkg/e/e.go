package e

import "fmt"

var (
	// Ошибки контент-хранилища
	ErrFetchFailure   = fmt.Errorf("failed to fetch products from content store")
	ErrUnexpectedCode = fmt.Errorf("unexpected status code from content store")

	// Ошибки валидации продукта
	ErrInvalidProduct   = fmt.Errorf("invalid product")
	ErrEmptyProductID   = fmt.Errorf("product id is empty")
	ErrNegativePrice    = fmt.Errorf("price must not be negative")
	ErrDiscountRange    = fmt.Errorf("discount percentage must be in [0, 100]")
	ErrEmptyTag         = fmt.Errorf("tag must not be empty")
	ErrDuplicateProduct = fmt.Errorf("duplicate product id")

	// Ошибки корзины
	ErrCartUnavailable = fmt.Errorf("cart is unavailable")
	ErrEmptyCartID     = fmt.Errorf("cart id is empty")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownBackend       = fmt.Errorf("unknown content backend")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 429 Too Many Requests
	ErrTooManyRequests = fmt.Errorf("too many requests")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
