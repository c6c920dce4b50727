package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger создаёт middleware для логирования HTTP запросов дашборда
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		// Обрабатываем запрос
		c.Next()

		// Логируем итог: статус, длительность, клиент, метод и путь
		log.Printf("[DASH] %3d | %13v | %15s | %-7s %s",
			c.Writer.Status(),
			time.Since(startTime),
			c.ClientIP(),
			c.Request.Method,
			c.Request.RequestURI,
		)
	}
}
