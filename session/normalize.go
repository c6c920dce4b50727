package session

import (
	"time"

	"github.com/egor/agentdash/models"
)

// Нормализация сырых данных бэкенда в канонические сущности.
// Политика: отсутствующее поле — не ошибка, а значение по умолчанию.

// NormalizeRoster приводит разнородный список сотрудников к каноническому
// виду: у каждой записи заполнены все пять полей.
func NormalizeRoster(payload models.RosterPayload) []models.Employee {
	roster := make([]models.Employee, 0, len(payload.Employees))
	for _, entry := range payload.Employees {
		switch {
		case entry.BareName != "":
			roster = append(roster, models.Employee{
				Name:   entry.BareName,
				Avatar: models.DefaultAvatar(entry.BareName),
			})
		case entry.Record != nil:
			rec := entry.Record
			avatar := rec.Avatar
			if avatar == "" {
				avatar = models.DefaultAvatar(rec.Name)
			}
			roster = append(roster, models.Employee{
				Name:          rec.Name,
				LastMessage:   rec.LastMessage,
				LastTimestamp: rec.LastTimestamp,
				Avatar:        avatar,
				Online:        rec.Online,
			})
		default:
			// элемент не был ни строкой, ни объектом — пустая запись,
			// фильтр поиска её не покажет
			roster = append(roster, models.Employee{
				Avatar: models.DefaultAvatar(""),
			})
		}
	}
	return roster
}

// NormalizeMessages приводит историю переписки к каноническому виду:
// timestamp без распознаваемой строки заменяется текущим моментом,
// пустой type становится "text".
func NormalizeMessages(payload models.ChatPayload) []models.Message {
	msgs := make([]models.Message, 0, len(payload.Messages))
	for _, raw := range payload.Messages {
		ts, ok := raw.TimestampString()
		if !ok {
			ts = time.Now().UTC().Format(time.RFC3339)
		}
		msgType := models.MessageType(raw.Type)
		if msgType == "" {
			msgType = models.TypeText
		}
		msgs = append(msgs, models.Message{
			Sender:    models.Sender(raw.Sender),
			Text:      raw.Text,
			Timestamp: ts,
			Type:      msgType,
			Document:  raw.Document,
		})
	}
	return msgs
}

// ExtractInstructions выбирает из истории сообщения руководителя,
// сохраняя их взаимный порядок.
func ExtractInstructions(msgs []models.Message) []models.Message {
	var pinned []models.Message
	for _, m := range msgs {
		if m.Sender == models.SenderBoss {
			pinned = append(pinned, m)
		}
	}
	return pinned
}
