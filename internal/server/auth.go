package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/GGmuzem/intcalc-project/internal/auth"
	"github.com/GGmuzem/intcalc-project/pkg/models"
)

// RegisterHandler обрабатывает регистрацию пользователей
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Response{Error: "Некорректный запрос"})
		return
	}

	// Проверяем, что логин и пароль не пусты
	if req.Login == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Response{Error: "Логин и пароль не могут быть пустыми"})
		return
	}

	if err := auth.RegisterUser(s.DB, &req); err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(Response{Error: "Пользователь с таким логином уже существует"})
			return
		}
		log.Printf("Ошибка при регистрации пользователя %s: %v", req.Login, err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(Response{Error: "Ошибка при регистрации"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Пользователь успешно зарегистрирован"})
}

// LoginHandler обрабатывает вход пользователей и выдает JWT токен
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Response{Error: "Некорректный запрос"})
		return
	}

	token, err := auth.LoginUser(s.DB, &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(Response{Error: "Неверный логин или пароль"})
			return
		}
		log.Printf("Ошибка при входе пользователя %s: %v", req.Login, err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(Response{Error: "Ошибка авторизации"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.LoginResponse{Token: token})
}
