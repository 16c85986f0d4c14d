package grpc

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const productServiceName = "storefront.v1.ProductService"

// ProductServiceServer — read-only доступ к карточкам витрины.
// Сообщения — well-known типы protobuf, поэтому сервис не требует сгенерированного кода.
type ProductServiceServer interface {
	ListProducts(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	GetProduct(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
}

var ProductServiceDesc = grpc.ServiceDesc{
	ServiceName: productServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListProducts", Handler: listProductsHandler},
		{MethodName: "GetProduct", Handler: getProductHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/product_service",
}

type ProductService struct {
	storefrontUC usecase.StorefrontUC
	logger       logger.Logger
}

func NewProductService(storefrontUC usecase.StorefrontUC, logger logger.Logger) *ProductService {
	return &ProductService{storefrontUC: storefrontUC, logger: logger}
}

func (g *ProductService) ListProducts(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	const op = "grpc.ListProducts"

	page := g.storefrontUC.ShowGrid(ctx)

	products := make([]any, 0, len(page.Cards))
	for _, c := range page.Cards {
		products = append(products, toGRPCCard(c))
	}

	res, err := structpb.NewStruct(map[string]any{
		"products": products,
		"degraded": page.Degraded,
	})
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return res, nil
}

func (g *ProductService) GetProduct(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	const op = "grpc.GetProduct"

	if req.GetValue() == "" {
		return nil, GRPCErrorResponse(e.Wrap(op, e.ErrStatusBadRequest))
	}

	detail, err := g.storefrontUC.GetProduct(ctx, req.GetValue())
	if err != nil {
		g.logger.Warnf("%s: %v", op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	card := toGRPCCard(detail.Card)
	card["description"] = detail.Description
	card["discount_percentage"] = detail.Product.DiscountPercentage.String()

	res, err := structpb.NewStruct(card)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return res, nil
}

func toGRPCCard(c usecase.Card) map[string]any {
	tags := make([]any, 0, len(c.Tags))
	for _, t := range c.Tags {
		tags = append(tags, t)
	}

	return map[string]any{
		"id":             c.ID,
		"title":          c.Title,
		"image_url":      c.ImageURL,
		"summary":        c.Summary,
		"price":          c.Price,
		"discount_badge": c.DiscountBadge,
		"tags":           tags,
		"detail_path":    c.DetailPath,
	}
}

func listProductsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProductServiceServer).ListProducts(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + productServiceName + "/ListProducts"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProductServiceServer).ListProducts(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProductServiceServer).GetProduct(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + productServiceName + "/GetProduct"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProductServiceServer).GetProduct(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
