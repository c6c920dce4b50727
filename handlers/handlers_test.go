package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/egor/agentdash/backend"
	"github.com/egor/agentdash/mockchat"
	"github.com/egor/agentdash/models"
	"github.com/egor/agentdash/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestDashboard поднимает mock-бэкенд и API дашборда поверх него
func newTestDashboard(t *testing.T) *httptest.Server {
	t.Helper()

	upstream := httptest.NewServer(mockchat.NewServer(nil).Router())
	t.Cleanup(upstream.Close)

	sess := session.New(backend.NewClient(upstream.URL, 5*time.Second))
	if err := sess.LoadRoster(context.Background()); err != nil {
		t.Fatalf("загрузка ростера: %v", err)
	}
	Setup(sess, nil)

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/roster", GetRoster)
		api.POST("/select", SelectConversation)
		api.GET("/transcript", GetTranscript)
		api.POST("/send", SendMessage)
	}

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("разбор ответа %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

type transcriptResponse struct {
	Employee         string           `json:"employee"`
	Messages         []models.Message `json:"messages"`
	BossInstructions []models.Message `json:"bossInstructions"`
}

// awaitTranscript ждёт, пока фоновая загрузка истории завершится
func awaitTranscript(t *testing.T, srv *httptest.Server) transcriptResponse {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var tr transcriptResponse
		getJSON(t, srv.URL+"/api/transcript", &tr)
		if len(tr.Messages) > 0 || len(tr.BossInstructions) > 0 {
			return tr
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("история так и не загрузилась")
	return transcriptResponse{}
}

func TestRosterFilter(t *testing.T) {
	srv := newTestDashboard(t)

	var out struct {
		Employees []models.Employee `json:"employees"`
	}
	getJSON(t, srv.URL+"/api/roster?query=da", &out)

	if len(out.Employees) != 2 || out.Employees[0].Name != "Dana" || out.Employees[1].Name != "dave" {
		t.Fatalf("фильтр по 'da' вернул не то: %+v", out.Employees)
	}

	getJSON(t, srv.URL+"/api/roster", &out)
	if len(out.Employees) != 4 {
		t.Fatalf("без запроса должны вернуться все: %+v", out.Employees)
	}
}

func TestTranscriptWelcomeState(t *testing.T) {
	srv := newTestDashboard(t)

	// диалог не выбран — это обычное состояние, не ошибка
	var tr transcriptResponse
	if code := getJSON(t, srv.URL+"/api/transcript", &tr); code != http.StatusOK {
		t.Fatalf("статус %d", code)
	}
	if tr.Employee != "" || len(tr.Messages) != 0 || len(tr.BossInstructions) != 0 {
		t.Fatalf("ожидалось пустое состояние: %+v", tr)
	}
}

func TestSelectAndTranscript(t *testing.T) {
	srv := newTestDashboard(t)

	resp := postJSON(t, srv.URL+"/api/select", map[string]string{"employee": "Dana"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("статус %d", resp.StatusCode)
	}

	tr := awaitTranscript(t, srv)
	if tr.Employee != "Dana" {
		t.Fatalf("активный диалог: %q", tr.Employee)
	}
	if len(tr.BossInstructions) != 1 {
		t.Fatalf("ожидалось одно указание руководителя: %+v", tr.BossInstructions)
	}
	for _, m := range tr.Messages {
		if m.Sender == models.SenderBoss {
			t.Fatalf("сообщение руководителя попало в ленту: %+v", m)
		}
	}
}

func TestSendThroughAPI(t *testing.T) {
	srv := newTestDashboard(t)

	resp := postJSON(t, srv.URL+"/api/select", map[string]string{"employee": "Dana"})
	resp.Body.Close()
	awaitTranscript(t, srv)

	resp = postJSON(t, srv.URL+"/api/send", map[string]string{"text": "hello"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("статус %d", resp.StatusCode)
	}
	var msg models.Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		t.Fatalf("разбор ответа: %v", err)
	}
	if msg.Sender != models.SenderAgent || msg.Text != "hello" {
		t.Fatalf("неверное эхо отправки: %+v", msg)
	}

	var tr transcriptResponse
	getJSON(t, srv.URL+"/api/transcript", &tr)
	last := tr.Messages[len(tr.Messages)-1]
	if last.Text != "hello" {
		t.Fatalf("сообщение не в ленте: %+v", tr.Messages)
	}
}

func TestSendInvalidIsSilentlyIgnored(t *testing.T) {
	srv := newTestDashboard(t)

	// без выбранного диалога
	resp := postJSON(t, srv.URL+"/api/send", map[string]string{"text": "hello"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("ожидался 204, получен %d", resp.StatusCode)
	}

	// пробельный текст
	r2 := postJSON(t, srv.URL+"/api/select", map[string]string{"employee": "Alex"})
	r2.Body.Close()
	resp = postJSON(t, srv.URL+"/api/send", map[string]string{"text": "   "})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("ожидался 204, получен %d", resp.StatusCode)
	}
}
