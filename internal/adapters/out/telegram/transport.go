// Package telegram delivers rendered messages through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vacancybot/internal/core/ports"
)

const (
	DefaultAPIURL  = "https://api.telegram.org"
	DefaultTimeout = 10 * time.Second

	parseModeHTML = "HTML"
	notModified   = "message is not modified"
)

type Config struct {
	APIURL  string
	Token   string
	Timeout time.Duration
}

// Transport implements ports.Transport with sendMessage and editMessageText.
type Transport struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

type Option func(*Transport)

func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) { t.http = c }
}

// NewTransport returns nil when no bot token is configured; callers treat a
// nil transport as "render only".
func NewTransport(cfg Config, logger *slog.Logger, opts ...Option) *Transport {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	t := &Transport{
		endpoint: strings.TrimRight(cfg.APIURL, "/") + "/bot" + token + "/",
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   logger.With("component", "telegram"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type inlineKeyboard struct {
	InlineKeyboard [][]ports.Button `json:"inline_keyboard"`
}

type linkPreviewOptions struct {
	IsDisabled bool `json:"is_disabled"`
}

type messageRequest struct {
	ChatID             int64              `json:"chat_id"`
	MessageID          int64              `json:"message_id,omitempty"`
	Text               string             `json:"text"`
	ParseMode          string             `json:"parse_mode"`
	LinkPreviewOptions linkPreviewOptions `json:"link_preview_options"`
	ReplyMarkup        *inlineKeyboard    `json:"reply_markup,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// APIError is a request the Bot API refused.
type APIError struct {
	Method      string
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

// SendOrEdit implements ports.Transport. Editing a message into identical
// content is not an error.
func (t *Transport) SendOrEdit(ctx context.Context, target ports.ChatTarget, msg ports.Message) error {
	req := messageRequest{
		ChatID:             target.ChatID,
		MessageID:          target.MessageID,
		Text:               msg.Text,
		ParseMode:          parseModeHTML,
		LinkPreviewOptions: linkPreviewOptions{IsDisabled: true},
	}
	if len(msg.Keyboard) > 0 {
		req.ReplyMarkup = &inlineKeyboard{InlineKeyboard: msg.Keyboard}
	}

	method := "sendMessage"
	if target.MessageID != 0 {
		method = "editMessageText"
	}

	err := t.call(ctx, method, req)
	var apiErr *APIError
	if target.MessageID != 0 && errors.As(err, &apiErr) && strings.Contains(apiErr.Description, notModified) {
		t.logger.DebugContext(ctx, "message already up to date", "chat_id", target.ChatID, "message_id", target.MessageID)
		return nil
	}
	return err
}

func (t *Transport) call(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		// url.Error would print the token
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode %s response (status %d): %w", method, resp.StatusCode, err)
	}
	if !out.OK {
		code := out.ErrorCode
		if code == 0 {
			code = resp.StatusCode
		}
		return &APIError{Method: method, Code: code, Description: out.Description}
	}
	return nil
}
