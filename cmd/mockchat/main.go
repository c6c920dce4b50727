package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/egor/agentdash/llm"
	"github.com/egor/agentdash/mockchat"
)

func main() {
	// Загружаем переменные окружения из .env файла
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используем переменные окружения")
	}

	// Симулятор ответов сотрудников (по умолчанию включён)
	var responder *llm.ReplySimulator
	raw := os.Getenv("ENABLE_REPLY_SIM")
	if raw == "" {
		raw = "true"
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Неверное значение ENABLE_REPLY_SIM=%q: %v — включаем по умолчанию", raw, err)
		enabled = true
	}
	if enabled {
		responder = llm.NewReplySimulator(llm.NewClient(), llm.GetDefaultConfig())
		log.Println("Симулятор ответов сотрудников включён")
	} else {
		log.Println("Симулятор ответов сотрудников отключён")
	}

	srv := mockchat.NewServer(responder)
	r := srv.Router()

	addr := env("MOCKCHAT_ADDR", ":9000")
	log.Printf("Mock-бэкенд чатов запущен на %s", addr)
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
