package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sleuth-client/internal/api"
	"sleuth-client/internal/command/mock"
	"sleuth-client/internal/config"
	"sleuth-client/internal/model"
	"sleuth-client/internal/prompt"
	"sleuth-client/internal/service"
	"sleuth-client/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const controlToken = "local-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *service.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:  config.ServerConfig{HTTPBase: "http://127.0.0.1:1", WSBase: "ws://127.0.0.1:1/ws", Timeout: time.Second},
		Session: config.SessionConfig{ID: "g1", DiscardPoolSize: 5},
		Channel: config.ChannelConfig{ReconnectDelay: time.Second, DialTimeout: time.Second},
		API:     config.APIConfig{Port: "8090", ControlToken: controlToken},
	}
	client := mock.NewMockClient(gomock.NewController(t))
	services := service.NewContainerWithClient(cfg, "p1", client, nil, nil)

	r := gin.New()
	api.RegisterRoutes(r, services)
	return r, services
}

func do(t *testing.T, r *gin.Engine, method, path, body string, authed bool) (*httptest.ResponseRecorder, response.Body) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+controlToken)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env response.Body
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v (%s)", method, path, err, w.Body.String())
	}
	return w, env
}

func TestPingIsOpen(t *testing.T) {
	r, _ := newTestRouter(t)
	w, _ := do(t, r, http.MethodGet, "/ping", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestControlTokenRequired(t *testing.T) {
	r, _ := newTestRouter(t)
	w, _ := do(t, r, http.MethodGet, "/v1/session", "", false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSessionView(t *testing.T) {
	r, services := newTestRouter(t)
	services.Store.ApplySession(model.Session{CurrentTurnPlayerID: "p1", Phase: model.PhaseIdle})

	w, env := do(t, r, http.MethodGet, "/v1/session", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var data struct {
		View struct {
			IsCurrentTurn bool          `json:"isCurrentTurn"`
			Session       model.Session `json:"session"`
		} `json:"view"`
	}
	if err := env.Decode(&data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !data.View.IsCurrentTurn || data.View.Session.ID != "g1" {
		t.Fatalf("unexpected view %+v", data.View)
	}
}

func TestPromptRoundTrip(t *testing.T) {
	r, services := newTestRouter(t)

	w, _ := do(t, r, http.MethodGet, "/v1/prompt", "", true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a prompt, got %d", w.Code)
	}

	opened := make(chan struct{})
	services.Prompts.OnOpen(func(prompt.Pending) { close(opened) })
	answer := make(chan string, 1)
	go func() {
		id, _ := services.Prompts.Request(context.Background(), prompt.Prompt{
			Title:    "Choose a player",
			ItemType: prompt.ItemPlayer,
			Items:    []prompt.Item{{ID: "p2", Label: "Bo"}},
		})
		answer <- id
	}()
	<-opened

	w, env := do(t, r, http.MethodGet, "/v1/prompt", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var pending prompt.Pending
	if err := env.Decode(&pending); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w, _ = do(t, r, http.MethodPost, "/v1/prompt/select", `{"promptId":"`+pending.ID+`","itemId":"p9"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an item not offered, got %d", w.Code)
	}
	w, _ = do(t, r, http.MethodPost, "/v1/prompt/select", `{"promptId":"`+pending.ID+`","itemId":"p2"}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	select {
	case id := <-answer:
		if id != "p2" {
			t.Fatalf("expected p2, got %q", id)
		}
	case <-time.After(time.Second):
		t.Fatalf("prompt was not resolved")
	}
}

func TestPlayOutsideTurnIsConflict(t *testing.T) {
	r, services := newTestRouter(t)
	services.Store.ApplySession(model.Session{CurrentTurnPlayerID: "p2", Phase: model.PhaseIdle})

	w, env := do(t, r, http.MethodPost, "/v1/play", `{"cards":["c1"]}`, true)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if env.Msg != "It's not your turn." {
		t.Fatalf("unexpected message %q", env.Msg)
	}
	if recent := services.Notices.Recent(); len(recent) != 1 {
		t.Fatalf("rejection must also be notified, got %d", len(recent))
	}
}

func TestJournalDisabled(t *testing.T) {
	r, _ := newTestRouter(t)
	w, _ := do(t, r, http.MethodGet, "/v1/journal", "", true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPlayAfterStopDoesNotWaitOnPrompt(t *testing.T) {
	r, services := newTestRouter(t)
	services.Store.ApplySession(model.Session{CurrentTurnPlayerID: "p1", Phase: model.PhaseIdle})
	services.Store.AddPlayers(model.Player{ID: "p1", DisplayName: "Ana"}, model.Player{ID: "p2", DisplayName: "Bo"})
	services.Store.SetHand([]model.Card{{ID: "c1", Name: "E_COT", Type: model.CardEvent}})
	services.Stop()

	done := make(chan int, 1)
	go func() {
		w, _ := do(t, r, http.MethodPost, "/v1/play", `{"cards":["c1"]}`, true)
		done <- w.Code
	}()

	select {
	case code := <-done:
		if code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for an abandoned play, got %d", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("play kept waiting on a prompt after stop")
	}
	if _, open := services.Prompts.Current(); open {
		t.Fatalf("no prompt may stay open after stop")
	}
}
