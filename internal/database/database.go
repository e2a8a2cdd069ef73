package database

import (
	"github.com/GGmuzem/intcalc-project/pkg/models"
)

// Database интерфейс хранилища пользователей и истории вычислений.
// Реализации: SQLiteDB (постоянное хранилище) и MemoryDB (для тестов
// и запуска без файла БД).
type Database interface {
	// Close закрывает соединение с БД
	Close() error
	// MigrateDB создает необходимые таблицы, если они не существуют
	MigrateDB() error

	// UserExists проверяет существование пользователя с указанным логином
	UserExists(login string) (bool, error)
	// CreateUser создает нового пользователя и возвращает его ID.
	// Пароль хешируется внутри реализации.
	CreateUser(user *models.User) (int, error)
	// GetUserByLogin возвращает пользователя по логину
	GetUserByLogin(login string) (*models.User, error)
	// GetUserByID возвращает пользователя по ID
	GetUserByID(id int) (*models.User, error)

	// SaveExpression сохраняет выражение в историю
	SaveExpression(expr *models.Expression) error
	// GetExpression возвращает выражение по ID, если оно принадлежит пользователю
	GetExpression(id string, userID int) (*models.Expression, error)
	// GetExpressions возвращает все выражения пользователя
	GetExpressions(userID int) ([]*models.Expression, error)
}
