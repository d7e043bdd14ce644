package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// RemoteProvider удостоверяет пользователя запросом GET {url}/auth/v1/user.
type RemoteProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRemoteProvider создаёт клиент провайдера идентификации.
// Пустой baseURL не является ошибкой: запросы будут падать при вызове.
func NewRemoteProvider(baseURL, apiKey string) *RemoteProvider {
	return &RemoteProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type remoteUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserFromToken возвращает пользователя, которому выдан токен.
func (p *RemoteProvider) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	const op = "identity.RemoteProvider.UserFromToken"
	if token == "" {
		return nil, fmt.Errorf("%s: %w: empty token", op, models.ErrAuthentication)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrAuthentication, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrAuthentication, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: unexpected status %s", op, models.ErrAuthentication, resp.Status)
	}

	var u remoteUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrAuthentication, err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%s: %w: user not found", op, models.ErrAuthentication)
	}
	return &models.User{UUID: u.ID, Email: u.Email, Role: u.Role}, nil
}
