package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/egor/agentdash/backend"
	"github.com/egor/agentdash/handlers"
	"github.com/egor/agentdash/middleware"
	"github.com/egor/agentdash/push"
	"github.com/egor/agentdash/session"
)

func main() {
	// Загружаем переменные окружения из .env файла
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используем переменные окружения")
	}

	// Клиент бэкенда чатов и сессия оператора
	client := backend.NewClientFromEnv()
	sess := session.New(client)

	// Ростер загружается один раз при старте; при ошибке дашборд
	// стартует с пустым списком и живёт дальше
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := sess.LoadRoster(ctx); err != nil {
			log.Printf("Стартовая загрузка ростера не удалась: %v", err)
		}
	}()

	// Hub для рассылки событий окнам дашборда
	hub := push.NewHub()
	go hub.Run()
	handlers.Setup(sess, hub)

	// Инициализация роутера Gin
	r := gin.Default()

	// Middleware для логирования
	r.Use(middleware.Logger())

	// Настройка CORS для взаимодействия с фронтендом
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{env("FRONTEND_URL", "http://localhost:3000")},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	// API эндпоинты дашборда
	api := r.Group("/api")
	{
		api.GET("/roster", handlers.GetRoster)
		api.POST("/select", handlers.SelectConversation)
		api.GET("/transcript", handlers.GetTranscript)
		api.POST("/send", handlers.SendMessage)
	}

	// WebSocket эндпоинт для окон дашборда
	r.GET("/ws", handlers.ServeWs)

	// Запуск сервера
	addr := env("AGENTDASH_ADDR", ":8090")
	log.Printf("Дашборд запущен на %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
