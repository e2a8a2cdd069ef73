package agent

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/GGmuzem/intcalc-project/internal/calculate"
	"github.com/GGmuzem/intcalc-project/pkg/calculator"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// Client клиент удалённого вычисления выражений через gRPC
type Client struct {
	client calculator.EvaluatorClient
	conn   *grpc.ClientConn
	strict bool
}

// Параметры повторных попыток при недоступности сервера
const (
	maxRetries    = 3
	retryInterval = 500 * time.Millisecond
)

// NewClient создает новый gRPC клиент вычислений
func NewClient(serverAddr string, strict bool) (*Client, error) {
	// Создаем соединение без TLS. Сообщения сервиса сериализуются
	// JSON-кодеком, поэтому выбираем его для всех вызовов.
	conn, err := grpc.Dial(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(calculator.CodecName)),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: calculator.NewEvaluatorClient(conn),
		conn:   conn,
		strict: strict,
	}, nil
}

// Close закрывает соединение с сервером
func (c *Client) Close() error {
	return c.conn.Close()
}

// Evaluate отправляет выражение на удалённое вычисление. Ошибки выражения
// возвращаются как *calculate.CalcError, транспортные ошибки возвращаются как есть
// после нескольких повторных попыток.
func (c *Client) Evaluate(expression string) (int, error) {
	req := &calculator.EvaluateRequest{
		Expression: expression,
		Strict:     c.strict,
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("Повторная попытка #%d вычисления выражения", attempt)
			time.Sleep(retryInterval * time.Duration(attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		resp, err := c.client.Evaluate(ctx, req)
		cancel()

		if err == nil {
			return int(resp.Result), nil
		}

		st, ok := status.FromError(err)
		if ok && st.Code() == codes.InvalidArgument {
			// Ошибка самого выражения, повторять бессмысленно
			return 0, remoteCalcError(st.Message())
		}
		lastErr = err
	}

	return 0, lastErr
}

// remoteCalcError восстанавливает вид ошибки вычисления по тексту статуса
func remoteCalcError(message string) *calculate.CalcError {
	switch {
	case strings.Contains(message, "division by zero"):
		return calculate.NewCalcError(calculate.ErrDivisionByZero, message)
	case strings.Contains(message, "invalid character"):
		return calculate.NewCalcError(calculate.ErrInvalidCharacter, message)
	case strings.Contains(message, "missing ')'"):
		return calculate.NewCalcError(calculate.ErrMalformedGrouping, message)
	default:
		return calculate.NewCalcError(calculate.ErrInvalidExpression, message)
	}
}
