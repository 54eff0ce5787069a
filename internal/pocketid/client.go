// Package pocketid реализует клиент API Pocket ID (провайдер идентификации).
package pocketid

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"group-sync-service/internal/domain"
	"group-sync-service/internal/transport"

	"github.com/sirupsen/logrus"
)

const systemName = "pocketid"

type userGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type customClaim struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type user struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Email        *string       `json:"email"`
	Disabled     bool          `json:"disabled"`
	UserGroups   []userGroup   `json:"userGroups"`
	CustomClaims []customClaim `json:"customClaims"`
}

type pagination struct {
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
}

type listUsersResponse struct {
	Data       []user     `json:"data"`
	Pagination pagination `json:"pagination"`
}

// Client реализует domain.IdentityProvider поверх REST API Pocket ID.
type Client struct {
	http     *transport.Client
	pageSize int
}

// NewClient создает новый экземпляр Client.
func NewClient(baseURL, apiKey string, pageSize int, timeout time.Duration, retryMax int, logger logrus.FieldLogger) *Client {
	return &Client{
		http: transport.New(transport.Options{
			System:   systemName,
			BaseURL:  baseURL,
			Headers:  map[string]string{"X-API-KEY": apiKey},
			Timeout:  timeout,
			RetryMax: retryMax,
			Logger:   logger,
		}),
		pageSize: pageSize,
	}
}

// ListUsers возвращает всех пользователей, проходя по страницам, пока провайдер
// не сообщит о последней странице или не вернет пустую. Без totalPages обход
// продолжается до пустой страницы.
func (c *Client) ListUsers(ctx context.Context) ([]domain.SourceAccount, error) {
	var accounts []domain.SourceAccount

	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("pagination[page]", strconv.Itoa(page))
		query.Set("pagination[limit]", strconv.Itoa(c.pageSize))

		var resp listUsersResponse
		if err := c.http.Do(ctx, http.MethodGet, "/api/users", query, nil, &resp); err != nil {
			return nil, err
		}

		if len(resp.Data) == 0 {
			break
		}
		for _, u := range resp.Data {
			accounts = append(accounts, toAccount(u))
		}

		// totalPages учитывается только если провайдер его прислал
		if resp.Pagination.TotalPages > 0 && page >= resp.Pagination.TotalPages {
			break
		}
	}

	return accounts, nil
}

func toAccount(u user) domain.SourceAccount {
	account := domain.SourceAccount{
		ID:       u.ID,
		Username: u.Username,
		Disabled: u.Disabled,
		Groups:   make([]string, 0, len(u.UserGroups)),
		Claims:   make(map[string]string, len(u.CustomClaims)),
	}
	if u.Email != nil {
		account.Email = *u.Email
	}
	for _, g := range u.UserGroups {
		account.Groups = append(account.Groups, g.Name)
	}
	for _, claim := range u.CustomClaims {
		account.Claims[claim.Key] = claim.Value
	}
	return account
}
