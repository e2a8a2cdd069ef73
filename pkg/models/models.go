package models

// Статусы выражения в истории вычислений
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Expression представляет вычисленное выражение в истории пользователя
type Expression struct {
	ID         string `json:"id"`
	Expression string `json:"expression"`
	Status     string `json:"status"`
	Result     int64  `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
	UserID     int    `json:"user_id,omitempty"`
	CreatedAt  int64  `json:"created_at,omitempty"`
}

// User представляет пользователя системы
type User struct {
	ID       int    `json:"id"`
	Login    string `json:"login"`
	Password string `json:"-"` // Не сериализуем пароль в JSON
}

// LoginRequest используется для запроса на вход
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse ответ на успешный вход
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest используется для регистрации
type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// CalculateRequest запрос на вычисление выражения
type CalculateRequest struct {
	Expression string `json:"expression"`
}

// CalculateResponse ответ с результатом вычисления
type CalculateResponse struct {
	ID     string `json:"id"`
	Result int64  `json:"result"`
}
