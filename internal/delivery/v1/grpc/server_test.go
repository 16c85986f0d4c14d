package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type fakeStorefrontUC struct {
	page   *usecase.GridPage
	detail *usecase.ProductDetail
	err    error
}

func (f *fakeStorefrontUC) ShowGrid(context.Context) *usecase.GridPage {
	return f.page
}

func (f *fakeStorefrontUC) AddToCart(context.Context, string, string) (string, error) {
	return "", nil
}

func (f *fakeStorefrontUC) GetProduct(context.Context, string) (*usecase.ProductDetail, error) {
	return f.detail, f.err
}

func chairCard() usecase.Card {
	return usecase.Card{
		ID:            "p1",
		Title:         "Chair",
		Summary:       "A sturdy chair",
		Price:         "$45",
		DiscountBadge: "10% OFF",
		Tags:          []string{"wood"},
		DetailPath:    "/products/p1",
	}
}

func startServer(t *testing.T, uc usecase.StorefrontUC) (*GRPCServer, *grpc.ClientConn) {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer(&cfg.GRPCConfig{Port: "0", NetworkMode: "tcp"}, logger.NewNopLogger())
	srv.RegisterServices(uc)

	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})

	return srv, conn
}

func TestHealth(t *testing.T) {
	srv, conn := startServer(t, &fakeStorefrontUC{})
	client := healthpb.NewHealthClient(conn)
	ctx := context.Background()

	res, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, res.GetStatus())

	srv.SetServing(true)
	res, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: productServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, res.GetStatus())
}

func TestListProducts(t *testing.T) {
	_, conn := startServer(t, &fakeStorefrontUC{page: usecase.NewGridPage([]usecase.Card{chairCard()}, false)})

	var res structpb.Struct
	require.NoError(t, conn.Invoke(context.Background(), "/"+productServiceName+"/ListProducts", &emptypb.Empty{}, &res))

	got := res.AsMap()
	assert.Equal(t, false, got["degraded"])
	products := got["products"].([]any)
	require.Len(t, products, 1)

	card := products[0].(map[string]any)
	assert.Equal(t, "p1", card["id"])
	assert.Equal(t, "$45", card["price"])
	assert.Equal(t, "10% OFF", card["discount_badge"])
	assert.Equal(t, []any{"wood"}, card["tags"])
}

func TestListProducts_Degraded(t *testing.T) {
	_, conn := startServer(t, &fakeStorefrontUC{page: usecase.NewGridPage([]usecase.Card{}, true)})

	var res structpb.Struct
	require.NoError(t, conn.Invoke(context.Background(), "/"+productServiceName+"/ListProducts", &emptypb.Empty{}, &res))

	assert.Equal(t, true, res.AsMap()["degraded"])
	assert.Empty(t, res.AsMap()["products"])
}

func TestGetProduct(t *testing.T) {
	detail := &usecase.ProductDetail{
		Card:        chairCard(),
		Description: "A sturdy chair for the garden",
		Product: *domain.NewProduct("p1", "Chair", decimal.NewFromInt(45), "A sturdy chair for the garden",
			decimal.NewFromInt(10), "", []string{"wood"}),
	}
	_, conn := startServer(t, &fakeStorefrontUC{detail: detail})

	var res structpb.Struct
	require.NoError(t, conn.Invoke(context.Background(), "/"+productServiceName+"/GetProduct", wrapperspb.String("p1"), &res))

	got := res.AsMap()
	assert.Equal(t, "A sturdy chair for the garden", got["description"])
	assert.Equal(t, "10", got["discount_percentage"])
}

func TestGetProduct_Errors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		err  error
		code codes.Code
	}{
		{name: "empty id", id: "", code: codes.InvalidArgument},
		{name: "not found", id: "missing", err: e.ErrProductNotFound, code: codes.NotFound},
		{name: "store down", id: "p1", err: e.Wrap("op", e.ErrFetchFailure), code: codes.Unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, conn := startServer(t, &fakeStorefrontUC{err: tt.err})

			var res structpb.Struct
			err := conn.Invoke(context.Background(), "/"+productServiceName+"/GetProduct", wrapperspb.String(tt.id), &res)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}
