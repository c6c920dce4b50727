package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/egor/agentdash/models"
)

func decodeRoster(t *testing.T, raw string) models.RosterPayload {
	t.Helper()
	var payload models.RosterPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("разбор полезной нагрузки: %v", err)
	}
	return payload
}

func TestNormalizeRosterBareStrings(t *testing.T) {
	payload := decodeRoster(t, `{"employees":["Dana","Alex"]}`)
	roster := NormalizeRoster(payload)

	if len(roster) != 2 {
		t.Fatalf("ожидалось 2 записи, получено %d", len(roster))
	}
	dana := roster[0]
	if dana.Name != "Dana" || dana.LastMessage != "" || dana.LastTimestamp != "" || dana.Online {
		t.Fatalf("неверные значения по умолчанию: %+v", dana)
	}
	if dana.Avatar != "https://ui-avatars.com/api/?name=Dana" {
		t.Fatalf("неверный производный аватар: %q", dana.Avatar)
	}

	// аватар выводится детерминированно: повторная нормализация даёт тот же URL
	again := NormalizeRoster(decodeRoster(t, `{"employees":["Dana"]}`))
	if again[0].Avatar != dana.Avatar {
		t.Fatalf("аватар не детерминирован: %q != %q", again[0].Avatar, dana.Avatar)
	}
}

func TestNormalizeRosterPartialRecord(t *testing.T) {
	payload := decodeRoster(t, `{"employees":[{"name":"dave","online":true},{"name":"Igor","avatar":"http://cdn/igor.png","lastMessage":"ок"}]}`)
	roster := NormalizeRoster(payload)

	if len(roster) != 2 {
		t.Fatalf("ожидалось 2 записи, получено %d", len(roster))
	}
	if roster[0].Name != "dave" || !roster[0].Online {
		t.Fatalf("запись не прошла насквозь: %+v", roster[0])
	}
	if roster[0].Avatar != models.DefaultAvatar("dave") {
		t.Fatalf("отсутствующий аватар должен выводиться из имени, получено %q", roster[0].Avatar)
	}
	if roster[1].Avatar != "http://cdn/igor.png" {
		t.Fatalf("явный аватар не должен подменяться: %q", roster[1].Avatar)
	}
	if roster[1].LastMessage != "ок" {
		t.Fatalf("lastMessage потерян: %+v", roster[1])
	}
}

func TestNormalizeRosterMissingOrInvalid(t *testing.T) {
	cases := []string{
		`{}`,
		`{"employees":"nope"}`,
		`{"employees":123}`,
		`{"employees":null}`,
	}
	for _, raw := range cases {
		roster := NormalizeRoster(decodeRoster(t, raw))
		if len(roster) != 0 {
			t.Fatalf("для %s ожидался пустой ростер, получено %d записей", raw, len(roster))
		}
	}
}

func TestNormalizeRosterEscapesAvatarName(t *testing.T) {
	roster := NormalizeRoster(decodeRoster(t, `{"employees":["Igor Petrov"]}`))
	if roster[0].Avatar != "https://ui-avatars.com/api/?name=Igor+Petrov" {
		t.Fatalf("имя должно кодироваться для URL, получено %q", roster[0].Avatar)
	}
}

func decodeChat(t *testing.T, raw string) models.ChatPayload {
	t.Helper()
	var payload models.ChatPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("разбор полезной нагрузки: %v", err)
	}
	return payload
}

func TestNormalizeMessagesDefaults(t *testing.T) {
	before := time.Now().UTC()
	payload := decodeChat(t, `{"messages":[
		{"sender":"Employee","text":"привет"},
		{"sender":"Agent","text":"ок","timestamp":12345},
		{"sender":"Employee","text":"файл","timestamp":"2025-01-10T09:01:00Z","type":"document","document":"report.xlsx"}
	]}`)
	msgs := NormalizeMessages(payload)
	after := time.Now().UTC().Add(2 * time.Second)

	if len(msgs) != 3 {
		t.Fatalf("ожидалось 3 сообщения, получено %d", len(msgs))
	}

	// отсутствующий и нестроковый timestamp подменяются текущим моментом
	for _, i := range []int{0, 1} {
		ts, err := time.Parse(time.RFC3339, msgs[i].Timestamp)
		if err != nil {
			t.Fatalf("timestamp по умолчанию должен быть валидным RFC3339: %v", err)
		}
		if ts.Before(before.Add(-time.Second)) || ts.After(after) {
			t.Fatalf("timestamp по умолчанию вне окна нормализации: %v", ts)
		}
	}
	if msgs[0].Type != models.TypeText {
		t.Fatalf("пустой type должен становиться text, получено %q", msgs[0].Type)
	}

	// заполненные поля проходят насквозь
	if msgs[2].Timestamp != "2025-01-10T09:01:00Z" || msgs[2].Type != models.TypeDocument || msgs[2].Document != "report.xlsx" {
		t.Fatalf("поля не прошли насквозь: %+v", msgs[2])
	}
}

func TestExtractInstructionsOrder(t *testing.T) {
	msgs := []models.Message{
		{Sender: models.SenderBoss, Text: "первое"},
		{Sender: models.SenderEmployee, Text: "привет"},
		{Sender: models.SenderBoss, Text: "второе"},
		{Sender: models.SenderAgent, Text: "ок"},
	}
	pinned := ExtractInstructions(msgs)
	if len(pinned) != 2 || pinned[0].Text != "первое" || pinned[1].Text != "второе" {
		t.Fatalf("указания извлечены неверно: %+v", pinned)
	}
}
