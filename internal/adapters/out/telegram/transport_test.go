package telegram_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"vacancybot/internal/adapters/out/telegram"
	"vacancybot/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	path string
	body map[string]any
}

func newBotAPI(t *testing.T, reply string, status int) (*httptest.Server, *[]recorded) {
	t.Helper()
	calls := &[]recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var body map[string]any
		assert.NoError(t, json.Unmarshal(raw, &body))
		*calls = append(*calls, recorded{path: r.URL.Path, body: body})

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func newTransport(srv *httptest.Server) *telegram.Transport {
	return telegram.NewTransport(
		telegram.Config{APIURL: srv.URL, Token: "123:abc"},
		slog.New(slog.DiscardHandler),
	)
}

func TestTransport_SendsNewMessage(t *testing.T) {
	srv, calls := newBotAPI(t, `{"ok": true, "result": {"message_id": 10}}`, http.StatusOK)

	err := newTransport(srv).SendOrEdit(t.Context(), ports.ChatTarget{ChatID: 42}, ports.Message{
		Text: "<b>Go developer</b>",
		Keyboard: [][]ports.Button{{
			{Text: "• 1 •", CallbackData: "search_page:golang:0"},
			{Text: "2", CallbackData: "search_page:golang:1"},
		}},
	})

	require.NoError(t, err)
	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/bot123:abc/sendMessage", call.path)
	assert.InDelta(t, 42, call.body["chat_id"], 0)
	assert.NotContains(t, call.body, "message_id")
	assert.Equal(t, "<b>Go developer</b>", call.body["text"])
	assert.Equal(t, "HTML", call.body["parse_mode"])
	assert.Equal(t, map[string]any{"is_disabled": true}, call.body["link_preview_options"])
	assert.Equal(t, map[string]any{
		"inline_keyboard": []any{[]any{
			map[string]any{"text": "• 1 •", "callback_data": "search_page:golang:0"},
			map[string]any{"text": "2", "callback_data": "search_page:golang:1"},
		}},
	}, call.body["reply_markup"])
}

func TestTransport_EditsMessage(t *testing.T) {
	srv, calls := newBotAPI(t, `{"ok": true, "result": true}`, http.StatusOK)

	err := newTransport(srv).SendOrEdit(t.Context(), ports.ChatTarget{ChatID: 42, MessageID: 7}, ports.Message{Text: "page 2"})

	require.NoError(t, err)
	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/bot123:abc/editMessageText", call.path)
	assert.InDelta(t, 7, call.body["message_id"], 0)
	assert.NotContains(t, call.body, "reply_markup")
}

func TestTransport_UnmodifiedEditIsNotAnError(t *testing.T) {
	srv, _ := newBotAPI(t,
		`{"ok": false, "error_code": 400, "description": "Bad Request: message is not modified"}`,
		http.StatusBadRequest)

	err := newTransport(srv).SendOrEdit(t.Context(), ports.ChatTarget{ChatID: 42, MessageID: 7}, ports.Message{Text: "same"})

	require.NoError(t, err)
}

func TestTransport_APIError(t *testing.T) {
	srv, _ := newBotAPI(t,
		`{"ok": false, "error_code": 403, "description": "Forbidden: bot was blocked by the user"}`,
		http.StatusForbidden)

	err := newTransport(srv).SendOrEdit(t.Context(), ports.ChatTarget{ChatID: 42}, ports.Message{Text: "hi"})

	var apiErr *telegram.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "sendMessage", apiErr.Method)
	assert.Equal(t, 403, apiErr.Code)
	assert.Contains(t, apiErr.Description, "blocked")
}

func TestTransport_TransportErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	err := newTransport(srv).SendOrEdit(t.Context(), ports.ChatTarget{ChatID: 42}, ports.Message{Text: "hi"})

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "123:abc")
}

func TestNewTransport_WithoutToken(t *testing.T) {
	assert.Nil(t, telegram.NewTransport(telegram.Config{Token: " "}, slog.New(slog.DiscardHandler)))
}
