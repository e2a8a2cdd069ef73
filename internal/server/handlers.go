package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/GGmuzem/intcalc-project/internal/auth"
	"github.com/GGmuzem/intcalc-project/internal/calculate"
	"github.com/GGmuzem/intcalc-project/pkg/models"
	"github.com/gorilla/mux"
)

// Response структура для ответа с ошибкой
type Response struct {
	Error string `json:"error,omitempty"`
}

// nextExpressionID выдает следующий ID выражения для истории
func (s *Server) nextExpressionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exprCounter++
	return fmt.Sprintf("expr%d", s.exprCounter)
}

// CalculateHandler обрабатывает POST-запросы с арифметическими выражениями.
// Выражение вычисляется синхронно, результат сохраняется в историю пользователя.
func (s *Server) CalculateHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(Response{Error: "Требуется авторизация"})
		return
	}

	// Парсинг тела запроса
	var reqBody models.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil || reqBody.Expression == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Response{Error: "Invalid JSON"})
		return
	}

	// Вычисляем выражение
	result, evalErr := s.evaluate(reqBody.Expression)

	// Сохраняем в историю независимо от исхода вычисления
	expr := &models.Expression{
		ID:         s.nextExpressionID(),
		Expression: reqBody.Expression,
		UserID:     user.ID,
		CreatedAt:  time.Now().Unix(),
	}
	if evalErr != nil {
		expr.Status = models.StatusFailed
		expr.Error = evalErr.Error()
	} else {
		expr.Status = models.StatusCompleted
		expr.Result = int64(result)
	}
	if err := s.DB.SaveExpression(expr); err != nil {
		log.Printf("Ошибка при сохранении выражения в историю: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(Response{Error: "Internal server error"})
		return
	}

	if evalErr != nil {
		s.handleCalcError(w, evalErr)
		return
	}

	// Успешный ответ
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.CalculateResponse{ID: expr.ID, Result: int64(result)})
}

// evaluate вычисляет выражение с учетом режима строгости сервера
func (s *Server) evaluate(expression string) (int, error) {
	if s.Strict {
		return calculate.EvaluateStrict(expression)
	}
	return calculate.Evaluate(expression)
}

// handleCalcError переводит ошибку вычисления в HTTP-ответ
func (s *Server) handleCalcError(w http.ResponseWriter, err error) {
	var calcErr *calculate.CalcError
	if errors.As(err, &calcErr) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(Response{Error: calcErr.Error()})
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(Response{Error: "Internal server error"})
}

// ListExpressionsHandler возвращает историю вычислений пользователя
func (s *Server) ListExpressionsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(Response{Error: "Требуется авторизация"})
		return
	}

	expressions, err := s.DB.GetExpressions(user.ID)
	if err != nil {
		log.Printf("Ошибка при получении истории пользователя %d: %v", user.ID, err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(Response{Error: "Internal server error"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string][]*models.Expression{"expressions": expressions})
}

// GetExpressionHandler возвращает одно выражение из истории пользователя
func (s *Server) GetExpressionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(Response{Error: "Требуется авторизация"})
		return
	}

	vars := mux.Vars(r)
	exprID := vars["id"]

	expr, err := s.DB.GetExpression(exprID, user.ID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(Response{Error: "Expression not found"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]*models.Expression{"expression": expr})
}
