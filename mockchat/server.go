// Package mockchat — dev-реализация бэкенда чатов.
// Реализует тот же контракт, что и боевой бэкенд:
// GET /chats/all, GET /chats/{employee}, POST /chats/send.
// Данные живут в памяти, при желании сотрудники отвечают через ЛЛМ.
package mockchat

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/egor/agentdash/llm"
	"github.com/egor/agentdash/models"
)

// storedMessage — сообщение с серверным id
type storedMessage struct {
	ID uuid.UUID `json:"id"`
	models.Message
}

// employeeState — состояние одного сотрудника
type employeeState struct {
	record   *models.EmployeeRecord // nil — в списке отдаётся голое имя
	messages []storedMessage
}

// Server хранит чаты в памяти
type Server struct {
	mu        sync.RWMutex
	order     []string // порядок сотрудников в списке
	employees map[string]*employeeState
	responder *llm.ReplySimulator // может быть nil
}

// NewServer создаёт сервер с засеянными данными.
// В списке сотрудников намеренно смешаны обе формы — голые имена и
// частичные записи, как это делает боевой бэкенд.
func NewServer(responder *llm.ReplySimulator) *Server {
	s := &Server{
		employees: make(map[string]*employeeState),
		responder: responder,
	}
	s.seed()
	return s
}

// seed наполняет сервер стартовыми данными
func (s *Server) seed() {
	s.addBare("Dana")
	s.addBare("Alex")
	s.addRecord(&models.EmployeeRecord{
		Name:   "Igor Petrov",
		Online: true,
	})
	s.addRecord(&models.EmployeeRecord{
		Name:          "dave",
		LastMessage:   "ок, сделаю",
		LastTimestamp: "2025-01-10T09:15:00Z",
	})

	s.append("Dana", models.Message{
		Sender:    models.SenderBoss,
		Text:      "Напомни Дане про отчёт до пятницы",
		Timestamp: "2025-01-10T08:00:00Z",
		Type:      models.TypeText,
	})
	s.append("Dana", models.Message{
		Sender:    models.SenderEmployee,
		Text:      "Привет! Отчёт почти готов",
		Timestamp: "2025-01-10T09:00:00Z",
		Type:      models.TypeText,
	})
	s.append("Dana", models.Message{
		Sender:    models.SenderEmployee,
		Text:      "report_draft.xlsx",
		Timestamp: "2025-01-10T09:01:00Z",
		Type:      models.TypeDocument,
		Document:  "report_draft.xlsx",
	})
}

func (s *Server) addBare(name string) {
	s.order = append(s.order, name)
	s.employees[name] = &employeeState{}
}

func (s *Server) addRecord(rec *models.EmployeeRecord) {
	s.order = append(s.order, rec.Name)
	s.employees[rec.Name] = &employeeState{record: rec}
}

// append добавляет сообщение в чат сотрудника и обновляет превью в записи
func (s *Server) append(name string, msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.employees[name]
	if !ok {
		return
	}
	state.messages = append(state.messages, storedMessage{ID: uuid.New(), Message: msg})
	if state.record != nil && msg.Sender != models.SenderBoss {
		state.record.LastMessage = msg.Text
		state.record.LastTimestamp = msg.Timestamp
	}
}

// Router собирает gin-роутер с контрактом бэкенда
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	chats := r.Group("/chats")
	{
		chats.GET("/all", s.getAll)
		chats.POST("/send", s.send)
		chats.GET("/:employee", s.getConversation)
	}
	return r
}

// getAll отдаёт список сотрудников в разнородном виде
func (s *Server) getAll(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]interface{}, 0, len(s.order))
	for _, name := range s.order {
		state := s.employees[name]
		if state.record != nil {
			employees = append(employees, state.record)
		} else {
			employees = append(employees, name)
		}
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// getConversation отдаёт историю чата с сотрудником
func (s *Server) getConversation(c *gin.Context) {
	name := c.Param("employee")

	s.mu.RLock()
	state, ok := s.employees[name]
	if !ok {
		s.mu.RUnlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "Сотрудник не найден: " + name})
		return
	}
	messages := make([]storedMessage, len(state.messages))
	copy(messages, state.messages)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// send принимает сообщение от дашборда. О приёме говорит только статус,
// тело ответа дашборд игнорирует.
func (s *Server) send(c *gin.Context) {
	var req models.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("send: ошибка в формате данных: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}
	if req.Employee == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee обязателен"})
		return
	}

	s.mu.RLock()
	_, ok := s.employees[req.Employee]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Сотрудник не найден: " + req.Employee})
		return
	}

	s.append(req.Employee, req.Message)
	log.Printf("Сообщение для %s принято", req.Employee)

	// Симулируем ответ сотрудника в фоне
	if s.responder != nil && req.Message.Sender == models.SenderAgent {
		go s.simulateReply(req.Employee, req.Message.Text)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// simulateReply генерирует ответ сотрудника и дописывает его в чат
func (s *Server) simulateReply(name, incoming string) {
	instructions := s.instructions(name)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	reply, err := s.responder.Reply(ctx, name, instructions, incoming)
	if err != nil || reply == nil {
		return
	}
	s.append(name, *reply)
	log.Printf("Сотрудник %s ответил", name)
}

// instructions собирает указания руководителя из чата сотрудника
func (s *Server) instructions(name string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Message
	if state, ok := s.employees[name]; ok {
		for _, m := range state.messages {
			if m.Sender == models.SenderBoss {
				out = append(out, m.Message)
			}
		}
	}
	return out
}
