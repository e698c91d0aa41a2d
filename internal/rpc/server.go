package rpc

import (
	"context"
	"errors"
	"net"

	"github.com/vskvj3/playbook/internal/core"
	"github.com/vskvj3/playbook/internal/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server exposes the command handler over gRPC.
type Server struct {
	CommandHandler *core.CommandHandler
}

func NewServer(handler *core.CommandHandler) *Server {
	return &Server{CommandHandler: handler}
}

// Execute runs one request. Command failures are returned as ERROR replies
// so both transports report them the same way; only requests that cannot be
// decoded fail with a gRPC status.
func (s *Server) Execute(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	request := utils.StructToMap(in)

	response, err := s.CommandHandler.HandleCommand(request)
	if errors.Is(err, core.ErrMalformedRequest) {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err != nil {
		response = core.ErrorResponse(err)
	}

	out, err := utils.MapToStruct(response)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// Serve runs a gRPC server on listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	logger := utils.GetLogger()

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(logRequests))
	Register(grpcServer, s)

	stop := context.AfterFunc(ctx, grpcServer.GracefulStop)
	defer stop()

	logger.Info("gRPC server is listening on " + listener.Addr().String())
	if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func logRequests(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		utils.GetLogger().Debugf("%s failed: %v", info.FullMethod, err)
	} else {
		utils.GetLogger().Debug("Handled " + info.FullMethod)
	}
	return resp, err
}
