package models

import (
	"fmt"
	"net/url"
)

// Employee представляет собой контакт в ростере.
// Поле Name уникально и служит ключом, отдельного id нет.
type Employee struct {
	Name          string `json:"name"`
	LastMessage   string `json:"lastMessage"`   // превью последнего сообщения, только для отображения
	LastTimestamp string `json:"lastTimestamp"` // может быть ISO-строкой или уже отформатированным временем
	Avatar        string `json:"avatar"`
	Online        bool   `json:"online"`
}

// DefaultAvatar выводит URL аватара из имени сотрудника.
// Детерминированно: одно и то же имя всегда даёт один и тот же URL.
func DefaultAvatar(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s", url.QueryEscape(name))
}
