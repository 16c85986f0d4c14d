package grpc

import (
	"errors"

	"github.com/DRSN-tech/storefront/pkg/e"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func GRPCErrorResponse(err error) error {
	switch {
	case errors.Is(err, e.ErrProductNotFound):
		return status.Error(codes.NotFound, e.ErrProductNotFound.Error())
	case errors.Is(err, e.ErrStatusBadRequest):
		return status.Error(codes.InvalidArgument, e.ErrStatusBadRequest.Error())
	case errors.Is(err, e.ErrFetchFailure):
		return status.Error(codes.Unavailable, e.ErrFetchFailure.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}
