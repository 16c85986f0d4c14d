package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
)

type fakeStore struct {
	mu       sync.Mutex
	products []domain.Product
	err      error
	calls    int
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeStore) FetchAllProducts(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	f.calls++
	products, err := f.products, f.err
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if release != nil {
		<-release
	}

	return products, err
}

func (f *fakeStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeStore) set(products []domain.Product, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products, f.err = products, err
}

type fakeCache struct {
	mu       sync.Mutex
	products map[string]domain.Product
	getErr   error
	setCh    chan []domain.Product
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		products: map[string]domain.Product{},
		setCh:    make(chan []domain.Product, 8),
	}
}

func (f *fakeCache) SetProducts(ctx context.Context, products []domain.Product) error {
	f.mu.Lock()
	for _, p := range products {
		f.products[p.ID] = p
	}
	f.mu.Unlock()

	f.setCh <- products
	return nil
}

func (f *fakeCache) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type addItemCall struct {
	cartID  string
	product domain.Product
}

type fakeCart struct {
	mu    sync.Mutex
	calls []addItemCall
	err   error
}

func (f *fakeCart) AddItem(ctx context.Context, cartID string, product domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, addItemCall{cartID: cartID, product: product})
	return f.err
}

type fakeImages struct{}

func (fakeImages) Resolve(ctx context.Context, rawURL string, width, height int) string {
	if rawURL == "" {
		return "/static/placeholder.svg"
	}
	return rawURL
}
