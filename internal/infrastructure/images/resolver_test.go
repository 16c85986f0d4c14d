package images

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlaceholder struct {
	url string
	err error
}

func (f fakePlaceholder) PresignedPlaceholderURL(context.Context) (string, error) {
	return f.url, f.err
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(fakePlaceholder{url: "http://minio:9000/storefront-assets/placeholder.svg?X-Amz-Signature=abc"}, logger.NewNopLogger())

	t.Run("empty url uses presigned placeholder", func(t *testing.T) {
		assert.Equal(t, "http://minio:9000/storefront-assets/placeholder.svg?X-Amz-Signature=abc", r.Resolve(ctx, "", 300, 300))
	})

	t.Run("sanity cdn url gets transform params", func(t *testing.T) {
		got := r.Resolve(ctx, "https://cdn.sanity.io/images/proj/production/abc-1200x800.png", 300, 300)

		u, err := url.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, "/images/proj/production/abc-1200x800.png", u.Path)
		assert.Equal(t, "300", u.Query().Get("w"))
		assert.Equal(t, "300", u.Query().Get("h"))
		assert.Equal(t, "crop", u.Query().Get("fit"))
		assert.Equal(t, "format", u.Query().Get("auto"))
	})

	t.Run("existing query params are kept and sizes overridden", func(t *testing.T) {
		got := r.Resolve(ctx, "https://cdn.sanity.io/images/p/d/a.png?w=50&dl=1", 600, 600)

		u, err := url.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, "600", u.Query().Get("w"))
		assert.Equal(t, "1", u.Query().Get("dl"))
	})

	t.Run("foreign url is returned unchanged", func(t *testing.T) {
		assert.Equal(t, "https://example.com/chair.png", r.Resolve(ctx, "https://example.com/chair.png", 300, 300))
	})
}

func TestResolver_PlaceholderFallback(t *testing.T) {
	ctx := context.Background()

	failing := NewResolver(fakePlaceholder{err: errors.New("minio down")}, logger.NewNopLogger())
	assert.Equal(t, StaticPlaceholder, failing.Resolve(ctx, "", 300, 300))

	noStorage := NewResolver(nil, logger.NewNopLogger())
	assert.Equal(t, StaticPlaceholder, noStorage.Resolve(ctx, "", 300, 300))
}
