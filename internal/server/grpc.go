package server

import (
	"context"
	"errors"
	"log"
	"net"
	"os"

	"github.com/GGmuzem/intcalc-project/internal/calculate"
	"github.com/GGmuzem/intcalc-project/pkg/calculator"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// EvaluatorService реализация gRPC сервера вычисления выражений
type EvaluatorService struct {
	calculator.UnimplementedEvaluatorServer
	Strict bool
}

// NewEvaluatorService создает новый gRPC сервис вычислений
func NewEvaluatorService(strict bool) *EvaluatorService {
	return &EvaluatorService{Strict: strict}
}

// Evaluate вычисляет выражение из запроса и возвращает целочисленный результат
func (s *EvaluatorService) Evaluate(ctx context.Context, in *calculator.EvaluateRequest) (*calculator.EvaluateResponse, error) {
	if in.Expression == "" {
		return nil, status.Error(codes.InvalidArgument, "empty expression")
	}

	var result int
	var err error
	if in.Strict || s.Strict {
		result, err = calculate.EvaluateStrict(in.Expression)
	} else {
		result, err = calculate.Evaluate(in.Expression)
	}

	if err != nil {
		var calcErr *calculate.CalcError
		if errors.As(err, &calcErr) {
			return nil, status.Error(codes.InvalidArgument, calcErr.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &calculator.EvaluateResponse{Result: int64(result)}, nil
}

// StartGRPCServer запускает gRPC сервер вычислений
func StartGRPCServer(strict bool) error {
	// Получаем порт из переменной окружения
	port := os.Getenv("GRPC_PORT")
	if port == "" {
		port = "50052" // По умолчанию используем порт 50052
	}

	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return err
	}

	grpcServer := grpc.NewServer()
	calculator.RegisterEvaluatorServer(grpcServer, NewEvaluatorService(strict))

	// Включаем рефлексию для отладки
	reflection.Register(grpcServer)

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("gRPC сервер запущен на порту %s", port)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("Ошибка gRPC сервера: %v", err)
		}
	}()

	return nil
}
