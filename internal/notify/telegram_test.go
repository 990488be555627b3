package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTelegram_Send(t *testing.T) {
	var got sendMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if want := "/bottesttoken/sendMessage"; r.URL.Path != want {
			t.Errorf("expected path %s, got %s", want, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	tg := NewTelegram("testtoken", "12345", WithAPIBase(server.URL))

	if err := tg.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if got.ChatID != "12345" {
		t.Errorf("expected chat_id 12345, got %s", got.ChatID)
	}
	if got.Text != "hello" {
		t.Errorf("expected text hello, got %s", got.Text)
	}
	if !got.DisableWebPagePreview {
		t.Error("expected link previews to be disabled")
	}
}

func TestTelegram_Send_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok": false, "description": "chat not found"}`))
	}))
	defer server.Close()

	tg := NewTelegram("testtoken", "12345", WithAPIBase(server.URL))

	err := tg.Send(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for rejected message")
	}
}

func TestTelegram_Send_NonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	tg := NewTelegram("testtoken", "12345", WithAPIBase(server.URL))

	if err := tg.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}
