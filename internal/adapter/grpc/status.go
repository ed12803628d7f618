package grpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "library-service/pkg/errors"
)

// toStatus converts usecase errors into gRPC status errors. Typed errors from
// pkg/errors carry their own code; anything else is reported as Internal
// without leaking driver details.
func toStatus(err error) error {
	var statuser apperrors.GRPCStatuser
	if errors.As(err, &statuser) {
		return statuser.GRPCStatus().Err()
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, "internal server error")
}
