package calculator

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// EvaluateRequest запрос на вычисление выражения
type EvaluateRequest struct {
	Expression string `json:"expression"`
	Strict     bool   `json:"strict"`
}

// EvaluateResponse ответ с результатом вычисления
type EvaluateResponse struct {
	Result int64 `json:"result"`
}

// Интерфейс для EvaluatorClient
type EvaluatorClient interface {
	Evaluate(ctx context.Context, in *EvaluateRequest, opts ...grpc.CallOption) (*EvaluateResponse, error)
}

// Интерфейс для EvaluatorServer
type EvaluatorServer interface {
	Evaluate(ctx context.Context, in *EvaluateRequest) (*EvaluateResponse, error)
}

// Базовая реализация EvaluatorServer
type UnimplementedEvaluatorServer struct{}

// Стаб для Evaluate
func (s *UnimplementedEvaluatorServer) Evaluate(ctx context.Context, in *EvaluateRequest) (*EvaluateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "метод Evaluate не реализован")
}

// RegisterEvaluatorServer регистрирует сервер Evaluator в gRPC
func RegisterEvaluatorServer(s *grpc.Server, srv EvaluatorServer) {
	s.RegisterService(&_Evaluator_serviceDesc, srv)
}

var _Evaluator_serviceDesc = grpc.ServiceDesc{
	ServiceName: "calculator.Evaluator",
	HandlerType: (*EvaluatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Evaluate",
			Handler:    _Evaluator_Evaluate_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "calculator.proto",
}

// Обработчик Evaluate
func _Evaluator_Evaluate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EvaluateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/calculator.Evaluator/Evaluate",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EvaluatorServer).Evaluate(ctx, req.(*EvaluateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// NewEvaluatorClient создает нового клиента для сервиса Evaluator
func NewEvaluatorClient(cc *grpc.ClientConn) EvaluatorClient {
	return &evaluatorClient{cc}
}

// Реализация клиента
type evaluatorClient struct {
	cc *grpc.ClientConn
}

// Evaluate вызывает Evaluate у сервера
func (c *evaluatorClient) Evaluate(ctx context.Context, in *EvaluateRequest, opts ...grpc.CallOption) (*EvaluateResponse, error) {
	out := new(EvaluateResponse)
	if err := c.cc.Invoke(ctx, "/calculator.Evaluator/Evaluate", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
