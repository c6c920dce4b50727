package models

import (
	"encoding/json"
)

// Типы полезных нагрузок бэкенда чатов. Бэкенд отдаёт данные в
// разнородном виде (список сотрудников может содержать и голые имена,
// и частичные записи), поэтому разбор терпимый: кривое поле — не
// ошибка, а значение по умолчанию.

// RosterPayload — ответ GET /chats/all
type RosterPayload struct {
	Employees []RosterEntry `json:"employees"`
}

// UnmarshalJSON терпимо разбирает список сотрудников:
// отсутствующее поле employees или не-массив дают пустой ростер.
func (p *RosterPayload) UnmarshalJSON(data []byte) error {
	var raw struct {
		Employees json.RawMessage `json:"employees"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Employees) == 0 {
		return nil
	}
	var entries []RosterEntry
	if err := json.Unmarshal(raw.Employees, &entries); err != nil {
		// employees — не массив, считаем ростер пустым
		return nil
	}
	p.Employees = entries
	return nil
}

// RosterEntry — один элемент списка сотрудников: либо голое имя,
// либо частичная запись. Размеченное объединение вместо проверки
// типов на лету.
type RosterEntry struct {
	BareName string          // заполнено, если элемент был строкой
	Record   *EmployeeRecord // заполнено, если элемент был объектом
}

// EmployeeRecord — частичная запись сотрудника из бэкенда.
// Любое поле, кроме имени, может отсутствовать.
type EmployeeRecord struct {
	Name          string `json:"name"`
	LastMessage   string `json:"lastMessage"`
	LastTimestamp string `json:"lastTimestamp"`
	Avatar        string `json:"avatar"`
	Online        bool   `json:"online"`
}

// UnmarshalJSON различает две формы элемента списка
func (e *RosterEntry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		e.BareName = name
		return nil
	}
	var rec EmployeeRecord
	if err := json.Unmarshal(data, &rec); err == nil {
		e.Record = &rec
		return nil
	}
	// ни строка, ни объект — оставляем пустой элемент, не падаем
	return nil
}

// ChatPayload — ответ GET /chats/{employee}
type ChatPayload struct {
	Messages []MessagePayload `json:"messages"`
}

// MessagePayload — сырое сообщение из бэкенда до нормализации.
// Timestamp хранится как RawMessage: бэкенд иногда присылает там не строку.
type MessagePayload struct {
	Sender    string          `json:"sender"`
	Text      string          `json:"text"`
	Timestamp json.RawMessage `json:"timestamp"`
	Type      string          `json:"type"`
	Document  string          `json:"document"`
}

// TimestampString возвращает timestamp, если он был строкой
func (m *MessagePayload) TimestampString() (string, bool) {
	if len(m.Timestamp) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(m.Timestamp, &s); err != nil {
		return "", false
	}
	return s, true
}

// SendRequest — тело POST /chats/send
type SendRequest struct {
	Employee string  `json:"employee"`
	Message  Message `json:"message"`
}
