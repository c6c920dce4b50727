package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/egor/agentdash/models"
)

// ReplySimulatorConfig содержит настройки симулятора ответов
type ReplySimulatorConfig struct {
	Enabled      bool `json:"enabled"`      // Включена ли симуляция
	DelaySeconds int  `json:"delaySeconds"` // Задержка перед ответом (симуляция набора)
}

// GetDefaultConfig возвращает настройки симулятора по умолчанию
func GetDefaultConfig() ReplySimulatorConfig {
	return ReplySimulatorConfig{
		Enabled:      true,
		DelaySeconds: 1,
	}
}

// ReplySimulator отвечает от имени сотрудника на сообщения оператора.
// Используется dev-бэкендом, чтобы переписка в дашборде была живой
// без настоящих сотрудников на той стороне.
type ReplySimulator struct {
	client *Client
	config ReplySimulatorConfig

	mu      sync.Mutex
	history map[string][]Message // имя сотрудника -> история реплик
}

// NewReplySimulator создает новый экземпляр симулятора
func NewReplySimulator(client *Client, config ReplySimulatorConfig) *ReplySimulator {
	return &ReplySimulator{
		client:  client,
		config:  config,
		history: make(map[string][]Message),
	}
}

// personaPrompt собирает системную реплику для сотрудника.
// Закреплённые указания руководителя вплетаются в контекст ответа.
func personaPrompt(employee string, instructions []models.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"Ты — %s, сотрудник компании. Ты переписываешься со своим руководителем в рабочем мессенджере. "+
			"Отвечай коротко, по-человечески, без канцелярита.", employee)
	if len(instructions) > 0 {
		b.WriteString(" Учитывай текущие указания руководства:")
		for _, ins := range instructions {
			b.WriteString(" ")
			b.WriteString(ins.Text)
		}
	}
	return b.String()
}

// Reply обрабатывает входящее сообщение оператора и возвращает ответ
// сотрудника, если он нужен. nil без ошибки означает «не отвечаем».
func (rs *ReplySimulator) Reply(ctx context.Context, employee string, instructions []models.Message, incoming string) (*models.Message, error) {
	if !rs.config.Enabled {
		return nil, nil
	}

	// Собираем историю для этого сотрудника
	rs.mu.Lock()
	history, exists := rs.history[employee]
	if !exists {
		history = []Message{{
			Role:    "system",
			Content: personaPrompt(employee, instructions),
		}}
	}
	history = append(history, Message{Role: "user", Content: incoming})
	rs.history[employee] = history
	rs.mu.Unlock()

	// Имитируем задержку ответа
	if rs.config.DelaySeconds > 0 {
		time.Sleep(time.Duration(rs.config.DelaySeconds) * time.Second)
	}

	response, err := rs.client.GenerateReply(ctx, history)
	if err != nil {
		log.Printf("Ошибка при генерации ответа для %s: %v", employee, err)
		return nil, err
	}

	// Ответ не должен выдавать, что на той стороне модель
	clean, escalate := sanitize(response)
	if escalate || clean == "" {
		log.Printf("Ответ для %s отфильтрован, сотрудник промолчит", employee)
		return nil, nil
	}

	rs.mu.Lock()
	rs.history[employee] = append(rs.history[employee], Message{Role: "assistant", Content: clean})
	rs.mu.Unlock()

	reply := &models.Message{
		Sender:    models.SenderEmployee,
		Text:      clean,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Type:      models.TypeText,
	}
	return reply, nil
}

// ClearHistory очищает историю диалога с сотрудником
func (rs *ReplySimulator) ClearHistory(employee string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	delete(rs.history, employee)
}
