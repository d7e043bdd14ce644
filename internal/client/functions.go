// Package client содержит клиентскую часть сервиса: вызов функций по HTTP, трекер
// дневной квоты с оптимистичным учётом и наблюдатель за подпиской.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Имена функций сервиса.
const (
	FnCheckUsage        = "check-usage"
	FnIncrementUsage    = "increment-usage"
	FnCheckSubscription = "check-subscription"
	FnCreateCheckout    = "create-checkout"
	FnCustomerPortal    = "customer-portal"
)

// ErrNoSession у клиента нет токена доступа.
var ErrNoSession = errors.New("no active session")

// FunctionsInvoker вызывает функцию сервиса от имени пользователя.
type FunctionsInvoker interface {
	// Invoke отправляет body как JSON и декодирует ответ в out, если out не nil.
	Invoke(ctx context.Context, name, accessToken string, body, out any) error
}

// SessionSource отдаёт токен доступа текущей сессии. Пустая строка означает, что сессии нет.
type SessionSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// StaticSession сессия с заранее известным токеном.
type StaticSession string

// AccessToken возвращает токен.
func (s StaticSession) AccessToken(context.Context) (string, error) {
	return string(s), nil
}

// FunctionError ответ функции с кодом не 2xx.
type FunctionError struct {
	Status  int
	Message string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("function returned %d: %s", e.Status, e.Message)
}

// HTTPFunctions вызывает функции по адресу {baseURL}/functions/v1/{name}.
type HTTPFunctions struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPFunctions создаёт HTTPFunctions. httpClient == nil заменяется клиентом с таймаутом 10s.
func NewHTTPFunctions(baseURL, apiKey string, httpClient *http.Client) *HTTPFunctions {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFunctions{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Invoke вызывает функцию name методом POST.
func (f *HTTPFunctions) Invoke(ctx context.Context, name, accessToken string, body, out any) error {
	const op = "client.HTTPFunctions.Invoke"

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/functions/v1/"+name, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if f.apiKey != "" {
		req.Header.Set("apikey", f.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%s: %s: %w", op, name, &FunctionError{Status: resp.StatusCode, Message: e.Error})
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode %s response: %w", op, name, err)
	}
	return nil
}
