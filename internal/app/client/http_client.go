package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/mgr-punith/password-vault/internal/app/client/config"
	"github.com/mgr-punith/password-vault/internal/common"
	"github.com/mgr-punith/password-vault/internal/domain/pin"
	"github.com/mgr-punith/password-vault/internal/domain/user"
	"github.com/mgr-punith/password-vault/internal/domain/vault"

	"golang.org/x/exp/slog"
)

const (
	msgInvalidPin = "Invalid PIN"
	userAgent     = "PasswordVault-Client/1.0"
)

// APIError ответ сервера, для которого нет доменной ошибки.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Detail)
}

// statusMapper переводит код ответа конкретного эндпоинта в доменную ошибку.
// nil означает общую обработку в mapStatus.
type statusMapper func(status int, detail string) error

type HTTPClient struct {
	client  *http.Client
	log     *slog.Logger
	baseURL string

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *HTTPClient {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &HTTPClient{
		client:  client,
		log:     log.With("component", "http_client"),
		baseURL: cfg.BaseURL(),
	}
}

// SetToken устанавливает токен аутентификации
func (h *HTTPClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.token = token
}

func (h *HTTPClient) bearer() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.token
}

// HealthCheck проверяет доступность сервера
func (h *HTTPClient) HealthCheck(ctx context.Context) error {
	return h.call(ctx, http.MethodGet, "/api/health", nil, nil, nil)
}

// Register регистрирует учетную запись и возвращает выданный токен.
func (h *HTTPClient) Register(ctx context.Context, login, password string) (string, error) {
	var resp struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}

	err := h.call(ctx, http.MethodPost, "/api/auth/signup", credentials{login, password}, &resp,
		func(status int, detail string) error {
			switch status {
			case http.StatusConflict:
				return user.ErrExists
			case http.StatusBadRequest:
				return fmt.Errorf("%w: %s", user.ErrInvalidInput, detail)
			}
			return nil
		})
	if err != nil {
		return "", err
	}

	return resp.Token, nil
}

func (h *HTTPClient) Login(ctx context.Context, login, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}

	err := h.call(ctx, http.MethodPost, "/api/auth/login", credentials{login, password}, &resp,
		func(status int, _ string) error {
			if status == http.StatusUnauthorized || status == http.StatusBadRequest {
				return user.ErrInvalidAuth
			}
			return nil
		})
	if err != nil {
		return "", err
	}

	return resp.Token, nil
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type pinRequest struct {
	Pin string `json:"pin"`
}

type sealedRequest struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
}

func (h *HTTPClient) hasPin(ctx context.Context) (bool, error) {
	var resp struct {
		IsSet bool `json:"isSet"`
	}

	if err := h.call(ctx, http.MethodGet, "/api/vault/has-pin", nil, &resp, nil); err != nil {
		return false, err
	}

	return resp.IsSet, nil
}

func (h *HTTPClient) setPin(ctx context.Context, p string) error {
	return h.call(ctx, http.MethodPost, "/api/vault/set-pin", pinRequest{p}, nil,
		func(status int, _ string) error {
			switch status {
			case http.StatusBadRequest:
				return pin.ErrValidation
			case http.StatusConflict:
				return pin.ErrAlreadySet
			}
			return nil
		})
}

func (h *HTTPClient) verifyPin(ctx context.Context, p string) error {
	return h.call(ctx, http.MethodPost, "/api/vault/verify-pin", pinRequest{p}, nil,
		func(status int, detail string) error {
			switch {
			case status == http.StatusBadRequest:
				return pin.ErrNotSet
			case status == http.StatusUnauthorized && detail == msgInvalidPin:
				return pin.ErrMismatch
			}
			return nil
		})
}

func (h *HTTPClient) listRecords(ctx context.Context) ([]vault.Record, error) {
	var resp struct {
		Items []vault.Record `json:"items"`
	}

	if err := h.call(ctx, http.MethodGet, "/api/vault/list", nil, &resp, nil); err != nil {
		return nil, err
	}

	return resp.Items, nil
}

func (h *HTTPClient) createRecord(ctx context.Context, ciphertext, iv string) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}

	if err := h.call(ctx, http.MethodPost, "/api/vault/create", sealedRequest{ciphertext, iv}, &resp, invalidData); err != nil {
		return "", err
	}

	return resp.ID, nil
}

func (h *HTTPClient) updateRecord(ctx context.Context, id, ciphertext, iv string) error {
	return h.call(ctx, http.MethodPut, "/api/vault/update/"+url.PathEscape(id), sealedRequest{ciphertext, iv}, nil, invalidData)
}

func (h *HTTPClient) deleteRecord(ctx context.Context, id string) error {
	return h.call(ctx, http.MethodDelete, "/api/vault/delete/"+url.PathEscape(id), nil, nil, nil)
}

func invalidData(status int, _ string) error {
	if status == http.StatusBadRequest {
		return vault.ErrInvalidData
	}
	return nil
}

// call выполняет запрос и разбирает ответ. Сетевые ошибки и 5xx
// возвращаются как common.ErrTransport, повторов здесь нет.
func (h *HTTPClient) call(ctx context.Context, method, path string, body, result any, mapper statusMapper) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := h.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	h.log.Debug("Отправка запроса", "method", method, "path", path)

	resp, err := h.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", common.ErrTransport, err)
	}

	// тело ответа не логируется: в нем токены и шифротекст
	h.log.Debug("Получен ответ", "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= http.StatusBadRequest {
		detail := errorDetail(data)
		if mapper != nil {
			if mapped := mapper(resp.StatusCode, detail); mapped != nil {
				return mapped
			}
		}
		return mapStatus(resp.StatusCode, detail)
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func mapStatus(status int, detail string) error {
	switch {
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", common.ErrTransport, (&APIError{Status: status, Detail: detail}).Error())
	case status == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case status == http.StatusNotFound:
		return vault.ErrNotFound
	default:
		return &APIError{Status: status, Detail: detail}
	}
}

// errorDetail достает сообщение из ответа huma ({"detail": ...})
// или auth middleware ({"error": ...}).
func errorDetail(data []byte) string {
	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Detail != "" {
		return body.Detail
	}
	return body.Error
}

// PinClient PinService учетной записи, к которой привязан токен HTTPClient.
type PinClient struct {
	h *HTTPClient
}

func (h *HTTPClient) Pins() *PinClient {
	return &PinClient{h: h}
}

func (p *PinClient) Has(ctx context.Context) (bool, error) {
	return p.h.hasPin(ctx)
}

func (p *PinClient) Set(ctx context.Context, pin string) error {
	return p.h.setPin(ctx, pin)
}

func (p *PinClient) Verify(ctx context.Context, pin string) error {
	return p.h.verifyPin(ctx, pin)
}

// RecordClient хранилище зашифрованных записей на сервере.
type RecordClient struct {
	h *HTTPClient
}

func (h *HTTPClient) Records() *RecordClient {
	return &RecordClient{h: h}
}

func (r *RecordClient) List(ctx context.Context) ([]vault.Record, error) {
	return r.h.listRecords(ctx)
}

func (r *RecordClient) Create(ctx context.Context, ciphertext, iv string) (string, error) {
	return r.h.createRecord(ctx, ciphertext, iv)
}

func (r *RecordClient) Update(ctx context.Context, id, ciphertext, iv string) error {
	return r.h.updateRecord(ctx, id, ciphertext, iv)
}

func (r *RecordClient) Delete(ctx context.Context, id string) error {
	return r.h.deleteRecord(ctx, id)
}
