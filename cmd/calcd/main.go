package main

import (
	"log"
	"os"

	"github.com/GGmuzem/intcalc-project/internal/database"
	"github.com/GGmuzem/intcalc-project/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	// Загружаем переменные окружения из .env, если файл есть
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используем переменные окружения")
	}

	// Выбираем хранилище
	var db database.Database
	var err error
	if os.Getenv("DB_TYPE") == "memory" {
		db = database.NewMemoryDB()
	} else {
		db, err = database.New(database.DbFilePath())
		if err != nil {
			log.Fatalf("Ошибка инициализации базы данных: %v", err)
		}
	}
	defer db.Close()

	if err := db.MigrateDB(); err != nil {
		log.Fatalf("Ошибка миграции базы данных: %v", err)
	}

	strict := os.Getenv("STRICT_PARSER") == "true"

	// Запускаем gRPC сервер вычислений
	if err := server.StartGRPCServer(strict); err != nil {
		log.Fatalf("Ошибка запуска gRPC сервера: %v", err)
	}

	// Запускаем HTTP сервер
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := server.NewServer(db, strict)
	log.Fatal(srv.Start(port))
}
