package sanity

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsResponse = `{
  "ms": 4,
  "query": "*[_type == \"product\"]",
  "result": [
    {
      "_id": "p1",
      "title": "Chair",
      "price": 45,
      "description": "A wooden chair",
      "discountPercentage": 10,
      "imageUrl": "https://cdn.sanity.io/images/pknoq409/production/chair.png",
      "tags": ["wood", "outdoor"]
    },
    {
      "_id": "p2",
      "title": "Lamp",
      "price": 19.99,
      "description": null,
      "discountPercentage": null,
      "imageUrl": null,
      "tags": null
    }
  ]
}`

func newTestClient(t *testing.T, h http.HandlerFunc, token string) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewClientWithEndpoint(ts.Client(), ts.URL+"/v2025-01-13/data/query/production", token, logger.NewNopLogger())
}

func TestClient_FetchAllProducts(t *testing.T) {
	var gotQuery, gotPath, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, productsResponse)
	}, "")

	products, err := client.FetchAllProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ProductsQuery, gotQuery)
	assert.Equal(t, "/v2025-01-13/data/query/production", gotPath)
	assert.Empty(t, gotAuth)

	require.Len(t, products, 2)

	chair := products[0]
	assert.Equal(t, "p1", chair.ID)
	assert.Equal(t, "Chair", chair.Title)
	assert.Equal(t, "45", chair.Price.String())
	assert.Equal(t, "10", chair.DiscountPercentage.String())
	assert.Equal(t, "https://cdn.sanity.io/images/pknoq409/production/chair.png", chair.ImageURL)
	assert.Equal(t, []string{"wood", "outdoor"}, chair.Tags)

	lamp := products[1]
	assert.Equal(t, "p2", lamp.ID)
	assert.Equal(t, "19.99", lamp.Price.String())
	assert.False(t, lamp.HasDiscount())
	assert.False(t, lamp.HasTags())
	assert.Empty(t, lamp.ImageURL)
	assert.Empty(t, lamp.Description)
}

func TestClient_SendsToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"result": []}`)
	}, "secret-token")

	products, err := client.FetchAllProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClient_QueryError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"description": "expected '}' following object body", "type": "queryParseError"}}`)
	}, "")

	_, err := client.FetchAllProducts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrUnexpectedCode)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "expected '}' following object body")
}

func TestClient_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
	}, "")

	_, err := client.FetchAllProducts(context.Background())
	assert.ErrorIs(t, err, e.ErrUnexpectedCode)
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestClient_MalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result": [`)
	}, "")

	_, err := client.FetchAllProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode query response")
}

func TestClient_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, "")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.FetchAllProducts(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueryEndpoint(t *testing.T) {
	c := &cfg.SanityCfg{ProjectID: "pknoq409", Dataset: "production", APIVersion: "2025-01-13", UseCDN: true}
	assert.Equal(t, "https://pknoq409.apicdn.sanity.io/v2025-01-13/data/query/production", QueryEndpoint(c))

	c.UseCDN = false
	assert.Equal(t, "https://pknoq409.api.sanity.io/v2025-01-13/data/query/production", QueryEndpoint(c))
}
