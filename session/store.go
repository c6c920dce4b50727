package session

import (
	"sync"

	"github.com/egor/agentdash/models"
)

// Store держит состояние сессии оператора: ростер, выбранный диалог,
// историю сообщений и закреплённые указания. Все изменения идут через
// методы-события, прямого доступа к полям нет. Ростер создаётся один
// раз при загрузке и дальше правится по месту; история заменяется
// целиком при каждой смене диалога.
type Store struct {
	mu sync.RWMutex

	roster      []models.Employee
	active      string // имя выбранного сотрудника, "" — диалог не выбран
	transcript  []models.Message
	pinned      []models.Message
	composing   string
	searchQuery string
}

// NewStore создаёт пустое состояние сессии
func NewStore() *Store {
	return &Store{}
}

// SetRoster применяет загруженный ростер (событие «ростер получен»)
func (s *Store) SetRoster(roster []models.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = roster
}

// Roster возвращает копию ростера
func (s *Store) Roster() []models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Employee, len(s.roster))
	copy(out, s.roster)
	return out
}

// Select меняет выбранный диалог (событие «диалог выбран»).
// Возвращает false, если сотрудник уже выбран — в этом случае
// перезагрузка истории не нужна. При смене выбора история и указания
// очищаются: они всегда относятся только к активному диалогу.
func (s *Store) Select(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == s.active {
		return false
	}
	s.active = name
	s.transcript = nil
	s.pinned = nil
	return true
}

// Active возвращает имя выбранного сотрудника ("" — ничего не выбрано)
func (s *Store) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// ApplyTranscript применяет загруженную историю (событие «история получена»).
// Ответ на запрос для уже не выбранного сотрудника отбрасывается:
// каждый запрос помечен именем, для которого он был отправлен.
func (s *Store) ApplyTranscript(employee string, msgs []models.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if employee != s.active {
		return false
	}
	s.transcript = msgs
	s.pinned = ExtractInstructions(msgs)
	return true
}

// SendLocal применяет локальную часть отправки одним событием:
// эхо в конец истории, черновик очищен, превью сотрудника обновлено.
// Имя сверяется с активным диалогом под тем же замком, что и мутация:
// если выбор успел смениться, ничего не меняется и возвращается false —
// как и с ApplyTranscript, чужая история не трогается.
func (s *Store) SendLocal(employee string, msg models.Message, preview string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if employee != s.active {
		return false
	}
	s.transcript = append(s.transcript, msg)
	if msg.Sender == models.SenderBoss {
		s.pinned = append(s.pinned, msg)
	}
	s.composing = ""
	for i := range s.roster {
		if s.roster[i].Name == employee {
			s.roster[i].LastMessage = msg.Text
			s.roster[i].LastTimestamp = preview
			break
		}
	}
	return true
}

// Transcript возвращает копию полной истории активного диалога
func (s *Store) Transcript() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// VisibleTranscript возвращает историю без сообщений руководителя —
// их место в закреплённом блоке, а не в ленте.
func (s *Store) VisibleTranscript() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, 0, len(s.transcript))
	for _, m := range s.transcript {
		if m.Sender != models.SenderBoss {
			out = append(out, m)
		}
	}
	return out
}

// Pinned возвращает копию закреплённых указаний руководителя
func (s *Store) Pinned() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.pinned))
	copy(out, s.pinned)
	return out
}

// SetComposing сохраняет набираемый, но не отправленный текст
func (s *Store) SetComposing(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composing = text
}

// Composing возвращает набираемый текст
func (s *Store) Composing() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.composing
}

// SetSearch запоминает строку поиска по ростеру
func (s *Store) SetSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

// SearchQuery возвращает текущую строку поиска
func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// FilteredRoster возвращает ростер, отфильтрованный текущей строкой поиска
func (s *Store) FilteredRoster() []models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterRoster(s.roster, s.searchQuery)
}
