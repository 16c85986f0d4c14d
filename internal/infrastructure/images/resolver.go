package images

import (
	"context"
	"net/url"
	"strconv"

	"github.com/DRSN-tech/storefront/pkg/logger"
)

const (
	// StaticPlaceholder — встроенный плейсхолдер, если объектное хранилище недоступно.
	StaticPlaceholder = "/static/placeholder.svg"

	sanityCDNHost = "cdn.sanity.io"
)

// PlaceholderSource выдаёт ссылку на плейсхолдер из объектного хранилища.
type PlaceholderSource interface {
	PresignedPlaceholderURL(ctx context.Context) (string, error)
}

// Resolver строит URL изображения для карточки заданного размера.
type Resolver struct {
	placeholder PlaceholderSource
	logger      logger.Logger
}

// NewResolver создаёт Resolver. placeholder может быть nil: тогда используется StaticPlaceholder.
func NewResolver(placeholder PlaceholderSource, logger logger.Logger) *Resolver {
	return &Resolver{
		placeholder: placeholder,
		logger:      logger,
	}
}

// Resolve возвращает ссылку на изображение. Пустая ссылка заменяется плейсхолдером,
// ссылки Sanity CDN получают параметры трансформации, остальные возвращаются как есть.
func (r *Resolver) Resolve(ctx context.Context, rawURL string, width, height int) string {
	if rawURL == "" {
		return r.placeholderURL(ctx)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host != sanityCDNHost {
		return rawURL
	}

	q := u.Query()
	q.Set("w", strconv.Itoa(width))
	q.Set("h", strconv.Itoa(height))
	q.Set("fit", "crop")
	q.Set("auto", "format")
	u.RawQuery = q.Encode()

	return u.String()
}

func (r *Resolver) placeholderURL(ctx context.Context) string {
	if r.placeholder == nil {
		return StaticPlaceholder
	}

	u, err := r.placeholder.PresignedPlaceholderURL(ctx)
	if err != nil {
		r.logger.Warnf("Placeholder presign failed, using static placeholder: %v", err)
		return StaticPlaceholder
	}

	return u
}
