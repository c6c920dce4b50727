package push

import (
	"encoding/json"
	"log"
)

// Hub раздаёт события сессии подключённым окнам дашборда.
// Это чистый fan-out презентационного слоя: события никуда не
// возвращаются и на состояние сессии не влияют. По каналу идут
// типизированные события, в JSON они кодируются один раз на рассылку.
type Hub struct {
	viewers map[*Viewer]bool

	events     chan Event
	register   chan *Viewer
	unregister chan *Viewer
}

// NewHub создает новый Hub
func NewHub() *Hub {
	return &Hub{
		viewers:    make(map[*Viewer]bool),
		events:     make(chan Event),
		register:   make(chan *Viewer),
		unregister: make(chan *Viewer),
	}
}

// Run запускает цикл Hub'а; все операции над viewers идут только отсюда
func (h *Hub) Run() {
	for {
		select {
		case viewer := <-h.register:
			h.viewers[viewer] = true
			log.Printf("Окно дашборда подключилось. Всего окон: %d", len(h.viewers))
		case viewer := <-h.unregister:
			h.drop(viewer)
		case event := <-h.events:
			h.fanOut(event)
		}
	}
}

// drop снимает регистрацию окна и закрывает его канал
func (h *Hub) drop(viewer *Viewer) {
	if _, ok := h.viewers[viewer]; !ok {
		return
	}
	delete(h.viewers, viewer)
	close(viewer.send)
	log.Printf("Окно дашборда отключилось. Всего окон: %d", len(h.viewers))
}

// fanOut кодирует событие и рассылает его всем окнам.
// Окно с переполненным каналом отключается: события не буферизуются
// дольше, чем вмещает канал окна.
func (h *Hub) fanOut(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Ошибка при маршализации события %q: %v", event.Type, err)
		return
	}
	for viewer := range h.viewers {
		select {
		case viewer.send <- data:
		default:
			h.drop(viewer)
		}
	}
}

// Broadcast отправляет событие всем подключённым окнам
func (h *Hub) Broadcast(event Event) {
	h.events <- event
}
