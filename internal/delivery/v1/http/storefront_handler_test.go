package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	products []domain.Product
	err      error
}

func (f *fakeStore) FetchAllProducts(context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

type cartCall struct {
	cartID  string
	product domain.Product
}

type fakeCart struct {
	mu    sync.Mutex
	calls []cartCall
	err   error
}

func (f *fakeCart) AddItem(_ context.Context, cartID string, product domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cartCall{cartID: cartID, product: product})
	return f.err
}

func (f *fakeCart) Calls() []cartCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]cartCall(nil), f.calls...)
}

func chairProduct() domain.Product {
	return *domain.NewProduct("p1", "Chair", decimal.NewFromInt(45), strings.Repeat("a", 150),
		decimal.NewFromInt(10), "https://example.com/chair.png", []string{"wood", "outdoor"})
}

func lampProduct() domain.Product {
	return *domain.NewProduct("p2", "Lamp", decimal.RequireFromString("19.99"), "Bright lamp",
		decimal.Zero, "", nil)
}

func newTestServer(t *testing.T, store *fakeStore, cart *fakeCart, limiter *RateLimiter) *httptest.Server {
	t.Helper()

	if limiter == nil {
		limiter = NewRateLimiter(100, 100)
	}

	uc := usecase.NewStorefrontUC(store, nil, cart, nil, logger.NewNopLogger())
	r := chi.NewRouter()
	require.NoError(t, NewRouter(r, limiter, logger.NewNopLogger()).Init(uc))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	var sb strings.Builder
	_, err := sb.ReadFrom(resp.Body)
	require.NoError(t, err)
	return sb.String()
}

func TestShowGrid_RendersOneCardPerProduct(t *testing.T) {
	srv := newTestServer(t, &fakeStore{products: []domain.Product{chairProduct(), lampProduct()}}, &fakeCart{}, nil)

	resp, err := http.Get(srv.URL + "/products")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Equal(t, 2, strings.Count(body, `class="card" data-product-id=`))
	assert.Less(t, strings.Index(body, `data-product-id="p1"`), strings.Index(body, `data-product-id="p2"`))
}

func TestShowGrid_ChairCard(t *testing.T) {
	srv := newTestServer(t, &fakeStore{products: []domain.Product{chairProduct()}}, &fakeCart{}, nil)

	resp, err := http.Get(srv.URL + "/products")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, strings.Repeat("a", 100)+"...")
	assert.NotContains(t, body, strings.Repeat("a", 101))
	assert.Contains(t, body, "$45")
	assert.Contains(t, body, "10% OFF")
	assert.Contains(t, body, `<span class="tag">wood</span>`)
	assert.Contains(t, body, `<span class="tag">outdoor</span>`)
	assert.Contains(t, body, `href="/products/p1"`)
	assert.Contains(t, body, `action="/products/p1/cart"`)
	assert.Contains(t, body, `alt="Chair"`)
	assert.Contains(t, body, `width="300" height="300"`)
}

func TestShowGrid_NoDiscountNoTags(t *testing.T) {
	srv := newTestServer(t, &fakeStore{products: []domain.Product{lampProduct()}}, &fakeCart{}, nil)

	resp, err := http.Get(srv.URL + "/products")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, "$19.99")
	assert.NotContains(t, body, "% OFF")
	assert.NotContains(t, body, "Tags:")
	assert.Contains(t, body, "Bright lamp")
}

func TestShowGrid_StoreFailure(t *testing.T) {
	srv := newTestServer(t, &fakeStore{err: errors.New("network down")}, &fakeCart{}, nil)

	resp, err := http.Get(srv.URL + "/products")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, strings.Count(body, `class="card" data-product-id=`))
	assert.Contains(t, body, "Products are temporarily unavailable.")
}

func TestShowGrid_EmptyStore(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeCart{}, nil)

	resp, err := http.Get(srv.URL + "/products")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "No products yet.")
}

func TestShowGrid_EscapesStoreContent(t *testing.T) {
	p := lampProduct()
	p.Title = `<script>alert(1)</script>`
	srv := newTestServer(t, &fakeStore{products: []domain.Product{p}}, &fakeCart{}, nil)

	resp, err := http.Get(srv.URL + "/products")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.NotContains(t, body, `<script>alert(1)</script>`)
	assert.Contains(t, body, `&lt;script&gt;`)
}

func TestRoot_RedirectsToGrid(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeCart{}, nil)

	resp, err := noRedirectClient().Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get("Location"))
}

func TestAddToCart_RedirectsAndNotifiesCartOnce(t *testing.T) {
	cart := &fakeCart{}
	srv := newTestServer(t, &fakeStore{products: []domain.Product{chairProduct(), lampProduct()}}, cart, nil)

	resp, err := noRedirectClient().Post(srv.URL+"/products/p1/cart", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/products/p1", resp.Header.Get("Location"))

	calls := cart.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, chairProduct().Description, calls[0].product.Description)
	assert.Equal(t, []string{"wood", "outdoor"}, calls[0].product.Tags)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == cartCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, cookie.Value, calls[0].cartID)
}

func TestAddToCart_ReusesCartCookie(t *testing.T) {
	cart := &fakeCart{}
	srv := newTestServer(t, &fakeStore{products: []domain.Product{chairProduct()}}, cart, nil)

	const id = "7f1f6f2e-4f7a-4d6c-9a43-3f3e0e2b8a11"
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/products/p1/cart", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: cartCookieName, Value: id})

	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	calls := cart.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, id, calls[0].cartID)
	assert.Empty(t, resp.Cookies())
}

func TestAddToCart_CartFailureStillNavigates(t *testing.T) {
	cart := &fakeCart{err: errors.New("cart down")}
	srv := newTestServer(t, &fakeStore{products: []domain.Product{chairProduct()}}, cart, nil)

	resp, err := noRedirectClient().Post(srv.URL+"/products/p1/cart", "", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Len(t, cart.Calls(), 1)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	cart := &fakeCart{}
	srv := newTestServer(t, &fakeStore{products: []domain.Product{chairProduct()}}, cart, nil)

	resp, err := noRedirectClient().Post(srv.URL+"/products/missing/cart", "", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, cart.Calls())
}

func TestAddToCart_RateLimited(t *testing.T) {
	cart := &fakeCart{}
	srv := newTestServer(t, &fakeStore{products: []domain.Product{chairProduct()}}, cart, NewRateLimiter(0.001, 1))

	first, err := noRedirectClient().Post(srv.URL+"/products/p1/cart", "", nil)
	require.NoError(t, err)
	first.Body.Close()

	second, err := noRedirectClient().Post(srv.URL+"/products/p1/cart", "", nil)
	require.NoError(t, err)
	second.Body.Close()

	assert.Equal(t, http.StatusSeeOther, first.StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Len(t, cart.Calls(), 1)
}

func TestShowProduct(t *testing.T) {
	srv := newTestServer(t, &fakeStore{products: []domain.Product{chairProduct()}}, &fakeCart{}, nil)

	resp, err := http.Get(srv.URL + "/products/p1")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, strings.Repeat("a", 150))
	assert.Contains(t, body, `width="600" height="600"`)

	resp, err = http.Get(srv.URL + "/products/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ListProducts(t *testing.T) {
	srv := newTestServer(t, &fakeStore{products: []domain.Product{chairProduct(), lampProduct()}}, &fakeCart{}, nil)

	resp, err := http.Get(srv.URL + "/api/v1/products")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got ProductListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.False(t, got.Degraded)
	require.Len(t, got.Products, 2)
	assert.Equal(t, "$45", got.Products[0].Price)
	assert.Equal(t, "10% OFF", got.Products[0].DiscountBadge)
	assert.Equal(t, []string{}, got.Products[1].Tags)
}

func TestAPI_ListProductsDegraded(t *testing.T) {
	srv := newTestServer(t, &fakeStore{err: errors.New("boom")}, &fakeCart{}, nil)

	resp, err := http.Get(srv.URL + "/api/v1/products")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got ProductListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, got.Degraded)
	assert.Empty(t, got.Products)
}

func TestAPI_GetProduct(t *testing.T) {
	srv := newTestServer(t, &fakeStore{products: []domain.Product{chairProduct()}}, &fakeCart{}, nil)

	resp, err := http.Get(srv.URL + "/api/v1/products/p1")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got ProductDetailResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "10", got.DiscountPercentage)
	assert.Len(t, got.Description, 150)

	missing, err := http.Get(srv.URL + "/api/v1/products/missing")
	require.NoError(t, err)
	defer missing.Body.Close()

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(missing.Body).Decode(&errResp))
	assert.Equal(t, http.StatusNotFound, errResp.Code)
}

func TestStatic_Placeholder(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeCart{}, nil)

	resp, err := http.Get(srv.URL + "/static/placeholder.svg")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<svg")
}
