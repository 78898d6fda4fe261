package grpc_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"jyotish-chart/src/helpers"
	"jyotish-chart/src/logger"
	"jyotish-chart/src/models"
	"jyotish-chart/src/service"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ChartRPC implements ChartServiceServer on top of the shared chart service.
// Payloads travel as structpb.Struct with the same JSON shape as the HTTP API.
type ChartRPC struct {
	Service *service.ChartService
	Logger  *logger.Logger
}

// NewChartRPC creates a new instance of ChartRPC
func NewChartRPC(svc *service.ChartService, log *logger.Logger) *ChartRPC {
	return &ChartRPC{
		Service: svc,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

func (s *ChartRPC) CalculateChart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "birth data is required")
	}

	var birth models.MBirthData
	if err := fromStruct(req, &birth); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid birth data: %v", err)
	}

	chart, err := s.Service.Calculate(ctx, birth)
	if err != nil {
		return nil, toStatus(err)
	}

	s.Logger.Debug("gRPC: CalculateChart %s", chart.ID)
	return toStruct(chart)
}

// -----------------------------------------------------------------------------

func (s *ChartRPC) GetChart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := req.GetFields()["id"].GetStringValue()
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	record, err := s.Service.GetChart(id)
	if err != nil {
		return nil, toStatus(err)
	}
	if record == nil {
		return nil, status.Errorf(codes.NotFound, "chart %s not found", id)
	}
	return toStruct(record)
}

// -----------------------------------------------------------------------------

func (s *ChartRPC) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toStruct(s.Service.Status())
}

// -----------------------------------------------------------------------------

// toStatus maps the error taxonomy onto gRPC codes.
func toStatus(err error) error {
	switch {
	case helpers.IsInputError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case helpers.IsComputationError(err):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, service.ErrArchiveDisabled):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// -----------------------------------------------------------------------------

func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func fromStruct(s *structpb.Struct, v interface{}) error {
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return json.Unmarshal(raw, v)
}
