package push

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second    // время на запись одного события
	pongWait       = 60 * time.Second    // максимальное время ожидания PONG
	pingPeriod     = (pongWait * 9) / 10 // как часто слать PING
	maxMessageSize = 512                 // максимальный размер входящего кадра
)

var newline = []byte{'\n'}

// Viewer представляет одно подключённое окно дашборда.
// Канал односторонний: окна только получают события, входящие кадры
// (кроме ping/pong) игнорируются.
type Viewer struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte // исходящие события
}

// NewViewer создаёт окно и регистрирует его в Hub
func NewViewer(hub *Hub, conn *websocket.Conn) *Viewer {
	v := &Viewer{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	hub.register <- v
	return v
}

// ReadPump вычитывает входящие кадры, чтобы соединение жило,
// и снимает регистрацию при разрыве
func (v *Viewer) ReadPump() {
	defer func() {
		v.hub.unregister <- v
		v.conn.Close()
		log.Printf("WebSocket закрыт")
	}()

	v.conn.SetReadLimit(maxMessageSize)
	v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		v.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket неожиданно закрылся: %v", err)
			}
			break
		}
	}
}

// WritePump пишет события из канала send в соединение и держит его
// живым через ping/pong
func (v *Viewer) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		v.hub.unregister <- v
		v.conn.Close()
	}()

	for {
		select {
		case event, ok := <-v.send:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// канал закрыт Hub'ом
				v.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := v.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(event)

			// сбрасываем накопившиеся события
			n := len(v.send)
			for i := 0; i < n; i++ {
				w.Write(newline)
				w.Write(<-v.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
