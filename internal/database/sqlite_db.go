package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/GGmuzem/intcalc-project/pkg/models"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

// Путь к файлу базы данных по умолчанию
const defaultDbFilePath = "./calculator.db"

// DbFilePath возвращает путь к файлу базы данных, учитывая переменную окружения
func DbFilePath() string {
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		return dbPath
	}
	return defaultDbFilePath
}

// SQLiteDB реализация интерфейса Database для SQLite
type SQLiteDB struct {
	db *sql.DB
}

// New создаёт и инициализирует новый экземпляр SQLite БД
func New(dbPath string) (*SQLiteDB, error) {
	// Убедимся, что директория существует
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию для базы данных: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось проверить соединение с базой данных: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close закрывает соединение с БД
func (db *SQLiteDB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// MigrateDB создает необходимые таблицы в базе данных, если они не существуют
func (db *SQLiteDB) MigrateDB() error {
	// Таблица пользователей
	_, err := db.db.Exec(`
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		login TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)
	`)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы users: %w", err)
	}

	// Таблица истории выражений
	_, err = db.db.Exec(`
	CREATE TABLE IF NOT EXISTS expressions (
		id TEXT PRIMARY KEY,
		user_id INTEGER,
		expression TEXT NOT NULL,
		status TEXT NOT NULL,
		result INTEGER,
		error TEXT,
		created_at INTEGER,
		FOREIGN KEY (user_id) REFERENCES users(id)
	)
	`)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы expressions: %w", err)
	}

	return nil
}

// UserExists проверяет существование пользователя с указанным логином
func (db *SQLiteDB) UserExists(login string) (bool, error) {
	var count int
	err := db.db.QueryRow("SELECT COUNT(*) FROM users WHERE login = ?", login).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке существования пользователя: %w", err)
	}
	return count > 0, nil
}

// CreateUser создает нового пользователя с хешированным паролем
func (db *SQLiteDB) CreateUser(user *models.User) (int, error) {
	exists, err := db.UserExists(user.Login)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("пользователь с логином %s уже существует", user.Login)
	}

	// Хешируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("ошибка при хэшировании пароля: %w", err)
	}

	result, err := db.db.Exec(
		"INSERT INTO users (login, password_hash, created_at) VALUES (?, ?, datetime('now'))",
		user.Login, string(hashedPassword),
	)
	if err != nil {
		return 0, fmt.Errorf("ошибка при сохранении пользователя: %w", err)
	}

	userID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID пользователя: %w", err)
	}

	return int(userID), nil
}

// GetUserByLogin получает пользователя по логину
func (db *SQLiteDB) GetUserByLogin(login string) (*models.User, error) {
	var user models.User

	query := "SELECT id, login, password_hash FROM users WHERE login = ?"
	err := db.db.QueryRow(query, login).Scan(&user.ID, &user.Login, &user.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("пользователь с логином %s не найден", login)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

// GetUserByID получает пользователя по ID
func (db *SQLiteDB) GetUserByID(id int) (*models.User, error) {
	var user models.User

	query := "SELECT id, login, password_hash FROM users WHERE id = ?"
	err := db.db.QueryRow(query, id).Scan(&user.ID, &user.Login, &user.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("пользователь с ID %d не найден", id)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

// SaveExpression сохраняет выражение в историю вычислений
func (db *SQLiteDB) SaveExpression(expr *models.Expression) error {
	createdAt := expr.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}

	_, err := db.db.Exec(`
	INSERT INTO expressions (id, user_id, expression, status, result, error, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`, expr.ID, expr.UserID, expr.Expression, expr.Status, expr.Result, expr.Error, createdAt)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении выражения: %w", err)
	}
	return nil
}

// GetExpression возвращает выражение по ID, если оно принадлежит пользователю
func (db *SQLiteDB) GetExpression(id string, userID int) (*models.Expression, error) {
	var expr models.Expression
	var result sql.NullInt64
	var errText sql.NullString

	err := db.db.QueryRow(`
	SELECT id, user_id, expression, status, result, error, created_at
	FROM expressions
	WHERE id = ? AND user_id = ?
	`, id, userID).Scan(&expr.ID, &expr.UserID, &expr.Expression, &expr.Status, &result, &errText, &expr.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("выражение с ID %s не найдено", id)
		}
		return nil, fmt.Errorf("ошибка при получении выражения: %w", err)
	}

	if result.Valid {
		expr.Result = result.Int64
	}
	if errText.Valid {
		expr.Error = errText.String
	}

	return &expr, nil
}

// GetExpressions возвращает все выражения пользователя, новые первыми
func (db *SQLiteDB) GetExpressions(userID int) ([]*models.Expression, error) {
	rows, err := db.db.Query(`
	SELECT id, user_id, expression, status, result, error, created_at
	FROM expressions
	WHERE user_id = ?
	ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении выражений: %w", err)
	}
	defer rows.Close()

	expressions := []*models.Expression{}
	for rows.Next() {
		var expr models.Expression
		var result sql.NullInt64
		var errText sql.NullString

		err := rows.Scan(&expr.ID, &expr.UserID, &expr.Expression, &expr.Status, &result, &errText, &expr.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании выражения: %w", err)
		}

		if result.Valid {
			expr.Result = result.Int64
		}
		if errText.Valid {
			expr.Error = errText.String
		}

		expressions = append(expressions, &expr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации результатов: %w", err)
	}

	return expressions, nil
}
