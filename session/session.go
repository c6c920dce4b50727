package session

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/egor/agentdash/backend"
	"github.com/egor/agentdash/models"
)

// Session связывает состояние с бэкендом чатов: загрузка ростера,
// загрузка истории при выборе диалога, отправка сообщений.
type Session struct {
	backend *backend.Client
	store   *Store
}

// New создаёт сессию поверх клиента бэкенда
func New(client *backend.Client) *Session {
	return &Session{
		backend: client,
		store:   NewStore(),
	}
}

// Store даёт доступ к состоянию сессии
func (s *Session) Store() *Store {
	return s.store
}

// LoadRoster загружает и нормализует ростер. Вызывается один раз при
// старте; при ошибке прежний ростер остаётся как есть.
func (s *Session) LoadRoster(ctx context.Context) error {
	payload, err := s.backend.FetchRoster(ctx)
	if err != nil {
		log.Printf("Ошибка загрузки ростера: %v", err)
		return err
	}
	s.store.SetRoster(NormalizeRoster(payload))
	log.Printf("Ростер загружен: %d сотрудников", len(s.store.Roster()))
	return nil
}

// Select выбирает диалог и запускает фоновую загрузку его истории.
// Повторный выбор уже активного диалога загрузку не запускает.
// Пустое имя снимает выбор (экран приветствия). Возвращённый канал
// закрывается, когда загрузка завершилась (или не понадобилась).
func (s *Session) Select(name string) <-chan struct{} {
	done := make(chan struct{})
	if !s.store.Select(name) || name == "" {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		s.loadConversation(name)
	}()
	return done
}

// loadConversation загружает историю для названного сотрудника.
// Запрос помечен именем: если к моменту ответа выбран другой диалог,
// ответ отбрасывается. Ошибка только логируется — на экране остаются
// прежние данные.
func (s *Session) loadConversation(name string) {
	payload, err := s.backend.FetchConversation(context.Background(), name)
	if err != nil {
		log.Printf("Ошибка загрузки диалога %s: %v", name, err)
		return
	}
	if !s.store.ApplyTranscript(name, NormalizeMessages(payload)) {
		log.Printf("Ответ для диалога %s отброшен: выбран другой диалог", name)
	}
}

// Send отправляет сообщение в активный диалог. Пустой (после обрезки
// пробелов) текст или отсутствие выбранного диалога — тихий no-op.
//
// Локальная часть синхронна: сообщение попадает в историю, черновик
// очищается, превью в ростере обновляется — всё до какого-либо сетевого
// обмена и одним событием стора, привязанным к имени диалога. Если
// выбор сменился между чтением активного диалога и применением, вся
// отправка становится no-op. Доставка уходит в фоне и на состояние не
// влияет: одна попытка, неудача только логируется, отката нет.
func (s *Session) Send(text string) *models.Message {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	employee := s.store.Active()
	if employee == "" {
		return nil
	}

	iso := time.Now().UTC().Format(time.RFC3339)
	msg := models.Message{
		Sender:    models.SenderAgent,
		Text:      text,
		Timestamp: iso,
		Type:      models.TypeText,
	}

	if !s.store.SendLocal(employee, msg, FormatTimestamp(iso)) {
		// пока собирали сообщение, выбран другой диалог —
		// в чужую историю эхо не попадает
		return nil
	}

	go func() {
		if err := s.backend.Send(context.Background(), employee, msg); err != nil {
			log.Printf("Ошибка доставки сообщения для %s: %v", employee, err)
		}
	}()

	return &msg
}
