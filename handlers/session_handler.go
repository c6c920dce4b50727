package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/egor/agentdash/push"
	"github.com/egor/agentdash/session"
)

// Sess — сессия оператора, которую обслуживает этот процесс
var Sess *session.Session

// PushHub — hub для рассылки событий окнам дашборда
var PushHub *push.Hub

// Setup устанавливает сессию и hub для обработчиков
func Setup(s *session.Session, hub *push.Hub) {
	Sess = s
	PushHub = hub
}

// broadcast шлёт событие окнам, если hub подключён
func broadcast(event push.Event) {
	if PushHub != nil {
		PushHub.Broadcast(event)
	}
}

// GetRoster возвращает ростер, отфильтрованный строкой поиска.
// Фильтр пересчитывается на каждый запрос, пустой query пропускает всех.
func GetRoster(c *gin.Context) {
	query := c.Query("query")
	Sess.Store().SetSearch(query)
	employees := Sess.Store().FilteredRoster()

	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// SelectConversation выбирает активный диалог и запускает загрузку его
// истории. Пустое имя снимает выбор (экран приветствия) — это обычное
// состояние, а не ошибка.
func SelectConversation(c *gin.Context) {
	var body struct {
		Employee string `json:"employee"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Printf("SelectConversation: ошибка в формате данных: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	Sess.Select(body.Employee)
	broadcast(push.NewConversationSelected(body.Employee))

	c.JSON(http.StatusOK, gin.H{"employee": body.Employee})
}

// GetTranscript возвращает историю активного диалога: ленту без
// сообщений руководителя и закреплённые указания отдельно.
// Без выбранного диалога отдаются пустые списки.
func GetTranscript(c *gin.Context) {
	store := Sess.Store()

	c.JSON(http.StatusOK, gin.H{
		"employee":         store.Active(),
		"messages":         store.VisibleTranscript(),
		"bossInstructions": store.Pinned(),
	})
}

// SendMessage отправляет сообщение в активный диалог. Ответ приходит
// сразу после локального применения, доставка идёт в фоне.
func SendMessage(c *gin.Context) {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Printf("SendMessage: ошибка в формате данных: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	msg := Sess.Send(body.Text)
	if msg == nil {
		// пустой текст или диалог не выбран — тихо игнорируем
		c.Status(http.StatusNoContent)
		return
	}

	broadcast(push.NewMessageAppended(Sess.Store().Active(), *msg))
	c.JSON(http.StatusOK, msg)
}
