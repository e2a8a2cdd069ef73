package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/GGmuzem/intcalc-project/internal/auth"
	"github.com/GGmuzem/intcalc-project/internal/database"
	"github.com/gorilla/mux"
)

// Server HTTP-сервер калькулятора
type Server struct {
	DB     database.Database
	Strict bool

	mu          sync.Mutex
	exprCounter int
}

// NewServer создает новый HTTP-сервер поверх указанного хранилища
func NewServer(db database.Database, strict bool) *Server {
	return &Server{DB: db, Strict: strict}
}

// Router собирает маршруты API
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	// Аутентификация
	router.HandleFunc("/api/v1/register", s.RegisterHandler).Methods("POST")
	router.HandleFunc("/api/v1/login", s.LoginHandler).Methods("POST")

	// API-эндпоинты для вычислений и истории
	router.HandleFunc("/api/v1/calculate", auth.AuthMiddleware(s.DB, s.CalculateHandler)).Methods("POST")
	router.HandleFunc("/api/v1/expressions", auth.AuthMiddleware(s.DB, s.ListExpressionsHandler)).Methods("GET")
	router.HandleFunc("/api/v1/expressions/{id}", auth.AuthMiddleware(s.DB, s.GetExpressionHandler)).Methods("GET")

	return router
}

// Start запускает HTTP-сервер на указанном порту
func (s *Server) Start(port string) error {
	log.Printf("Сервер запущен на порту %s", port)
	return http.ListenAndServe(":"+port, s.Router())
}
