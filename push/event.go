package push

import (
	"github.com/egor/agentdash/models"
)

// Event — конверт события для окон дашборда
type Event struct {
	Type    string      `json:"type"` // "roster_updated", "conversation_selected", "message_appended"
	Payload interface{} `json:"payload"`
}

// NewRosterUpdated создаёт событие об изменении ростера
func NewRosterUpdated(roster []models.Employee) Event {
	return Event{
		Type: "roster_updated",
		Payload: struct {
			Employees []models.Employee `json:"employees"`
		}{Employees: roster},
	}
}

// NewConversationSelected создаёт событие о смене активного диалога
func NewConversationSelected(employee string) Event {
	return Event{
		Type: "conversation_selected",
		Payload: struct {
			Employee string `json:"employee"`
		}{Employee: employee},
	}
}

// NewMessageAppended создаёт событие о новом сообщении в активном диалоге
func NewMessageAppended(employee string, msg models.Message) Event {
	return Event{
		Type: "message_appended",
		Payload: struct {
			Employee string         `json:"employee"`
			Message  models.Message `json:"message"`
		}{Employee: employee, Message: msg},
	}
}
