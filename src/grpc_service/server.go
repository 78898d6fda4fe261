package grpc_service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"runtime/debug"

	"jyotish-chart/src/logger"
	"jyotish-chart/src/models"
	"jyotish-chart/src/service"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "jyotish.ChartService"

// ChartServiceServer is the server API for the chart service.
type ChartServiceServer interface {
	CalculateChart(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetChart(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// -----------------------------------------------------------------------------
// Service descriptor
// -----------------------------------------------------------------------------

var ChartServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ChartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CalculateChart", Handler: calculateChartHandler},
		{MethodName: "GetChart", Handler: getChartHandler},
		{MethodName: "GetStatus", Handler: getStatusHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jyotish/chart_service.proto",
}

func calculateChartHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChartServiceServer).CalculateChart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/CalculateChart"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChartServiceServer).CalculateChart(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getChartHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChartServiceServer).GetChart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetChart"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChartServiceServer).GetChart(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getStatusHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChartServiceServer).GetStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetStatus"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChartServiceServer).GetStatus(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// -----------------------------------------------------------------------------
// Server
// -----------------------------------------------------------------------------

type GRPCServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	server *grpc.Server
}

// NewGRPCServer registers the chart service behind the recovery interceptor.
func NewGRPCServer(cfg *models.MConfig, svc *service.ChartService, log *logger.Logger) *GRPCServer {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(RecoveryInterceptor(log)))
	srv.RegisterService(&ChartServiceDesc, NewChartRPC(svc, log))
	return &GRPCServer{Config: cfg, Logger: log, server: srv}
}

// Serve blocks on an existing listener.
func (g *GRPCServer) Serve(lis net.Listener) error {
	return g.server.Serve(lis)
}

func (g *GRPCServer) Start() error {
	addr := fmt.Sprintf("%s:%d", g.Config.GrpcHost, g.Config.GrpcPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	g.Logger.Info("gRPC server listening on %s", addr)
	if err := g.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (g *GRPCServer) Stop() {
	g.server.GracefulStop()
}

// -----------------------------------------------------------------------------

// RecoveryInterceptor turns a panic (an invariant violation) into codes.Internal.
func RecoveryInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("gRPC: panic in %s: %v\n%s", info.FullMethod, r, debug.Stack())
				resp = nil
				err = status.Errorf(codes.Internal, "internal error: %v", r)
			}
		}()
		return handler(ctx, req)
	}
}
