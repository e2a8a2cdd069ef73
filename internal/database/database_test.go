package database

import (
	"testing"

	"github.com/GGmuzem/intcalc-project/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

func TestMemoryDBUsers(t *testing.T) {
	db := NewMemoryDB()

	exists, err := db.UserExists("alice")
	if err != nil || exists {
		t.Fatalf("Expected no user, got exists=%v, err=%v", exists, err)
	}

	userID, err := db.CreateUser(&models.User{Login: "alice", Password: "wonderland"})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if userID == 0 {
		t.Fatal("Expected non-zero user ID")
	}

	// Пароль хранится хешированным
	user, err := db.GetUserByLogin("alice")
	if err != nil {
		t.Fatalf("Failed to get user by login: %v", err)
	}
	if user.Password == "wonderland" {
		t.Error("Password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("wonderland")); err != nil {
		t.Errorf("Stored hash does not match password: %v", err)
	}

	byID, err := db.GetUserByID(userID)
	if err != nil || byID.Login != "alice" {
		t.Errorf("Expected user alice by ID, got %v, %v", byID, err)
	}

	// Дубликат логина
	if _, err := db.CreateUser(&models.User{Login: "alice", Password: "x"}); err == nil {
		t.Error("Expected error for duplicate login")
	}
}

func TestMemoryDBExpressions(t *testing.T) {
	db := NewMemoryDB()

	userID, _ := db.CreateUser(&models.User{Login: "alice", Password: "x"})

	expressions := []*models.Expression{
		{ID: "expr1", Expression: "2+2", Status: models.StatusCompleted, Result: 4, UserID: userID, CreatedAt: 100},
		{ID: "expr2", Expression: "1/0", Status: models.StatusFailed, Error: "division by zero", UserID: userID, CreatedAt: 200},
		{ID: "expr3", Expression: "5*5", Status: models.StatusCompleted, Result: 25, UserID: userID + 1, CreatedAt: 300},
	}
	for _, expr := range expressions {
		if err := db.SaveExpression(expr); err != nil {
			t.Fatalf("Failed to save expression %s: %v", expr.ID, err)
		}
	}

	// Выражение достаётся только своим пользователем
	expr, err := db.GetExpression("expr1", userID)
	if err != nil {
		t.Fatalf("Failed to get expr1: %v", err)
	}
	if expr.Result != 4 || expr.Status != models.StatusCompleted {
		t.Errorf("Unexpected expr1 contents: %+v", expr)
	}

	if _, err := db.GetExpression("expr3", userID); err == nil {
		t.Error("Expected error for foreign expression")
	}

	// История пользователя, новые первыми
	list, err := db.GetExpressions(userID)
	if err != nil {
		t.Fatalf("Failed to list expressions: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 expressions, got %d", len(list))
	}
	if list[0].ID != "expr2" || list[1].ID != "expr1" {
		t.Errorf("Expected newest-first order, got %s, %s", list[0].ID, list[1].ID)
	}
	if list[0].Error != "division by zero" {
		t.Errorf("Expected error text preserved, got %q", list[0].Error)
	}
}

func TestSQLiteDB(t *testing.T) {
	dbPath := t.TempDir() + "/test.db"
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to open sqlite db: %v", err)
	}
	defer db.Close()

	if err := db.MigrateDB(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	userID, err := db.CreateUser(&models.User{Login: "bob", Password: "builder"})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	user, err := db.GetUserByLogin("bob")
	if err != nil || user.ID != userID {
		t.Fatalf("Failed to get user back: %v", err)
	}

	expr := &models.Expression{
		ID:         "expr1",
		Expression: "4*4-3*2",
		Status:     models.StatusCompleted,
		Result:     10,
		UserID:     userID,
	}
	if err := db.SaveExpression(expr); err != nil {
		t.Fatalf("Failed to save expression: %v", err)
	}

	got, err := db.GetExpression("expr1", userID)
	if err != nil {
		t.Fatalf("Failed to get expression: %v", err)
	}
	if got.Result != 10 || got.Expression != "4*4-3*2" {
		t.Errorf("Unexpected expression contents: %+v", got)
	}

	list, err := db.GetExpressions(userID)
	if err != nil || len(list) != 1 {
		t.Fatalf("Expected 1 expression in history, got %d, %v", len(list), err)
	}
}
