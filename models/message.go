package models

// Sender — автор сообщения. Закрытый набор значений,
// других отправителей в диалоге не бывает.
type Sender string

const (
	SenderEmployee Sender = "Employee" // сотрудник на той стороне
	SenderAgent    Sender = "Agent"    // оператор дашборда
	SenderBoss     Sender = "Boss"     // закреплённые указания руководителя
)

// MessageType — тип содержимого сообщения
type MessageType string

const (
	TypeText     MessageType = "text"
	TypeDocument MessageType = "document"
)

// Message представляет собой одно сообщение диалога
type Message struct {
	Sender    Sender      `json:"sender"`
	Text      string      `json:"text"`
	Timestamp string      `json:"timestamp"` // ISO-8601 (RFC 3339)
	Type      MessageType `json:"type"`
	Document  string      `json:"document,omitempty"` // имя файла, только для type = "document"
}
