package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/GGmuzem/intcalc-project/internal/agent"
	"github.com/GGmuzem/intcalc-project/internal/calculate"
	"github.com/joho/godotenv"
)

func main() {
	// .env необязателен, молча продолжаем без него
	_ = godotenv.Load()

	strict := os.Getenv("STRICT_PARSER") == "true"

	fmt.Print("Enter an arithmetic expression: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		log.Fatalf("Ошибка чтения выражения: %v", err)
	}
	expression := strings.TrimSpace(line)

	result, err := evaluateExpression(expression, strict)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Result: %d\n", result)
}

// evaluateExpression вычисляет выражение локально или через удалённый
// gRPC сервис, если задан адрес в CALC_REMOTE
func evaluateExpression(expression string, strict bool) (int, error) {
	if addr := os.Getenv("CALC_REMOTE"); addr != "" {
		client, err := agent.NewClient(addr, strict)
		if err != nil {
			return 0, err
		}
		defer client.Close()
		return client.Evaluate(expression)
	}

	if strict {
		return calculate.EvaluateStrict(expression)
	}
	return calculate.Evaluate(expression)
}
