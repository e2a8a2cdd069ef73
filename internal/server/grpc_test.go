package server

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/GGmuzem/intcalc-project/internal/agent"
	"github.com/GGmuzem/intcalc-project/internal/calculate"
	"github.com/GGmuzem/intcalc-project/pkg/calculator"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestEvaluatorServiceEvaluate(t *testing.T) {
	svc := NewEvaluatorService(false)

	tests := []struct {
		expression string
		strict     bool
		expected   int64
		code       codes.Code // OK означает успех
	}{
		{"2+2*2", false, 6, codes.OK},
		{"(1+3*(-4))/2", false, -5, codes.OK},
		{"-1*-4", false, 4, codes.OK},
		{"1/0", false, 0, codes.InvalidArgument},
		{"1+a", false, 0, codes.InvalidArgument},
		{"", false, 0, codes.InvalidArgument},
		{"1+", true, 0, codes.InvalidArgument}, // Строгий режим по флагу запроса
		{"1+", false, 1, codes.OK},
	}

	for _, test := range tests {
		resp, err := svc.Evaluate(context.Background(), &calculator.EvaluateRequest{
			Expression: test.expression,
			Strict:     test.strict,
		})

		if test.code == codes.OK {
			if err != nil {
				t.Errorf("Expression %q failed unexpectedly: %v", test.expression, err)
				continue
			}
			if resp.Result != test.expected {
				t.Errorf("Expression %q: expected %d, got %d", test.expression, test.expected, resp.Result)
			}
			continue
		}

		if err == nil {
			t.Errorf("Expression %q: expected error, got result %d", test.expression, resp.Result)
			continue
		}
		st, ok := status.FromError(err)
		if !ok || st.Code() != test.code {
			t.Errorf("Expression %q: expected code %v, got %v", test.expression, test.code, err)
		}
	}
}

// startTestGRPCServer поднимает сервис на локальном порту и возвращает его адрес
func startTestGRPCServer(t *testing.T, strict bool) string {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer()
	calculator.RegisterEvaluatorServer(grpcServer, NewEvaluatorService(strict))

	go grpcServer.Serve(lis)
	t.Cleanup(grpcServer.Stop)

	return lis.Addr().String()
}

func TestEvaluatorServiceOverConnection(t *testing.T) {
	// Полный путь клиент-сервер: сериализация запроса и ответа проходит
	// через реальное соединение, а не прямой вызов метода
	addr := startTestGRPCServer(t, false)

	client, err := agent.NewClient(addr, false)
	if err != nil {
		t.Fatalf("Failed to dial evaluator: %v", err)
	}
	defer client.Close()

	result, err := client.Evaluate("2+2*2")
	if err != nil {
		t.Fatalf("Evaluate over connection failed: %v", err)
	}
	if result != 6 {
		t.Errorf("Expected 6, got %d", result)
	}

	result, err = client.Evaluate("(1+3*(-4))/2")
	if err != nil {
		t.Fatalf("Evaluate over connection failed: %v", err)
	}
	if result != -5 {
		t.Errorf("Expected -5, got %d", result)
	}
}

func TestEvaluatorClientErrorMapping(t *testing.T) {
	// Ошибки выражения доезжают до клиента как *calculate.CalcError
	// с восстановленным видом
	addr := startTestGRPCServer(t, false)

	client, err := agent.NewClient(addr, false)
	if err != nil {
		t.Fatalf("Failed to dial evaluator: %v", err)
	}
	defer client.Close()

	tests := []struct {
		expression string
		kind       error
	}{
		{"1/0", calculate.ErrDivisionByZero},
		{"1+a", calculate.ErrInvalidCharacter},
	}

	for _, test := range tests {
		_, err := client.Evaluate(test.expression)
		if err == nil {
			t.Errorf("Expression %q: expected error, got nil", test.expression)
			continue
		}
		if !errors.Is(err, test.kind) {
			t.Errorf("Expression %q: expected kind %v, got %v", test.expression, test.kind, err)
		}

		var calcErr *calculate.CalcError
		if !errors.As(err, &calcErr) {
			t.Errorf("Expression %q: expected *calculate.CalcError, got %T", test.expression, err)
		}
	}
}

func TestEvaluatorServiceStrictMode(t *testing.T) {
	// Строгость, заданная на сервере, действует на все запросы
	svc := NewEvaluatorService(true)

	_, err := svc.Evaluate(context.Background(), &calculator.EvaluateRequest{Expression: "(1+2"})
	if err == nil {
		t.Fatal("Expected error for unbalanced parentheses in strict service")
	}
	if st, ok := status.FromError(err); !ok || st.Code() != codes.InvalidArgument {
		t.Errorf("Expected InvalidArgument, got %v", err)
	}
}
