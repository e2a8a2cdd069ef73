package database

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/GGmuzem/intcalc-project/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// MemoryDB реализация БД в памяти без использования SQLite
type MemoryDB struct {
	users       map[string]*models.User
	userByID    map[int]*models.User
	expressions map[string]*models.Expression
	mutex       sync.RWMutex
	userIDSeq   int
}

// NewMemoryDB создает новую in-memory БД
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		users:       make(map[string]*models.User),
		userByID:    make(map[int]*models.User),
		expressions: make(map[string]*models.Expression),
		userIDSeq:   1,
	}
}

// Close просто заглушка для совместимости
func (db *MemoryDB) Close() error {
	return nil
}

// MigrateDB для in-memory не требуется миграция
func (db *MemoryDB) MigrateDB() error {
	return nil
}

// UserExists проверяет существование пользователя с указанным логином
func (db *MemoryDB) UserExists(login string) (bool, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	_, exists := db.users[login]
	return exists, nil
}

// CreateUser создает нового пользователя
func (db *MemoryDB) CreateUser(user *models.User) (int, error) {
	// Хешируем пароль до захвата мьютекса
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.users[user.Login]; exists {
		return 0, fmt.Errorf("пользователь с логином %s уже существует", user.Login)
	}

	// Назначаем ID
	userID := db.userIDSeq
	db.userIDSeq++

	// Создаем копию пользователя с хешированным паролем
	newUser := &models.User{
		ID:       userID,
		Login:    user.Login,
		Password: string(hashedPassword),
	}

	db.users[user.Login] = newUser
	db.userByID[userID] = newUser

	return userID, nil
}

// GetUserByLogin возвращает пользователя по логину
func (db *MemoryDB) GetUserByLogin(login string) (*models.User, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	user, exists := db.users[login]
	if !exists {
		return nil, fmt.Errorf("пользователь с логином %s не найден", login)
	}
	return user, nil
}

// GetUserByID возвращает пользователя по ID
func (db *MemoryDB) GetUserByID(id int) (*models.User, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	user, exists := db.userByID[id]
	if !exists {
		return nil, fmt.Errorf("пользователь с ID %d не найден", id)
	}
	return user, nil
}

// SaveExpression сохраняет выражение в историю
func (db *MemoryDB) SaveExpression(expr *models.Expression) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	createdAt := expr.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}

	// Создаем копию выражения
	newExpr := &models.Expression{
		ID:         expr.ID,
		Expression: expr.Expression,
		Status:     expr.Status,
		Result:     expr.Result,
		Error:      expr.Error,
		UserID:     expr.UserID,
		CreatedAt:  createdAt,
	}

	db.expressions[expr.ID] = newExpr
	return nil
}

// GetExpression возвращает выражение по ID и user_id
func (db *MemoryDB) GetExpression(id string, userID int) (*models.Expression, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	expr, exists := db.expressions[id]
	if !exists || expr.UserID != userID {
		return nil, fmt.Errorf("выражение с ID %s не найдено", id)
	}
	return expr, nil
}

// GetExpressions возвращает все выражения пользователя, новые первыми
func (db *MemoryDB) GetExpressions(userID int) ([]*models.Expression, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	expressions := []*models.Expression{}
	for _, expr := range db.expressions {
		if expr.UserID == userID {
			expressions = append(expressions, expr)
		}
	}

	sort.Slice(expressions, func(i, j int) bool {
		return expressions[i].CreatedAt > expressions[j].CreatedAt
	})

	return expressions, nil
}
