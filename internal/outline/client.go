// Package outline реализует клиент RPC API Outline (целевая система).
//
// Необходимые права API-ключа: users.list groups.list groups.memberships
// groups.create groups.delete groups.add_user groups.remove_user.
package outline

import (
	"context"
	"errors"
	"net/http"
	"time"

	"group-sync-service/internal/domain"
	"group-sync-service/internal/transport"

	"github.com/sirupsen/logrus"
)

const systemName = "outline"

type page struct {
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Filter string `json:"filter,omitempty"`
	Query  string `json:"query,omitempty"`
	ID     string `json:"id,omitempty"`
}

type user struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

type group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type membership struct {
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
}

type usersResponse struct {
	Data []user `json:"data"`
}

type groupsResponse struct {
	Data struct {
		Groups []group `json:"groups"`
	} `json:"data"`
}

type membershipsResponse struct {
	Data struct {
		GroupMemberships []membership `json:"groupMemberships"`
	} `json:"data"`
}

type groupResponse struct {
	Data group `json:"data"`
}

type groupRequest struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	UserID string `json:"userId,omitempty"`
}

// Client реализует domain.TargetDirectory поверх API Outline.
type Client struct {
	http     *transport.Client
	pageSize int
}

// NewClient создает новый экземпляр Client.
func NewClient(baseURL, apiKey string, pageSize int, timeout time.Duration, retryMax int, logger logrus.FieldLogger) *Client {
	return &Client{
		http: transport.New(transport.Options{
			System:   systemName,
			BaseURL:  baseURL + "/api",
			Headers:  map[string]string{"Authorization": "Bearer " + apiKey},
			Timeout:  timeout,
			RetryMax: retryMax,
			Logger:   logger,
		}),
		pageSize: pageSize,
	}
}

// paginate запрашивает страницы до первой неполной.
func paginate[T any](pageSize int, fetch func(offset int) ([]T, error)) ([]T, error) {
	var all []T
	for offset := 0; ; offset += pageSize {
		items, err := fetch(offset)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < pageSize {
			return all, nil
		}
	}
}

func (c *Client) post(ctx context.Context, method string, body, out any) error {
	return c.http.Do(ctx, http.MethodPost, "/"+method, nil, body, out)
}

// ListUsers возвращает активных пользователей Outline.
func (c *Client) ListUsers(ctx context.Context) ([]domain.TargetAccount, error) {
	users, err := paginate(c.pageSize, func(offset int) ([]user, error) {
		var resp usersResponse
		err := c.post(ctx, "users.list", page{Limit: c.pageSize, Offset: offset, Filter: "active"}, &resp)
		return resp.Data, err
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.TargetAccount, 0, len(users))
	for _, u := range users {
		account := domain.TargetAccount{ID: u.ID, Name: u.Name}
		if u.Email != nil {
			account.Email = *u.Email
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// ListGroups возвращает все группы Outline.
func (c *Client) ListGroups(ctx context.Context) ([]domain.TargetGroup, error) {
	return c.listGroups(ctx, "")
}

func (c *Client) listGroups(ctx context.Context, query string) ([]domain.TargetGroup, error) {
	groups, err := paginate(c.pageSize, func(offset int) ([]group, error) {
		var resp groupsResponse
		err := c.post(ctx, "groups.list", page{Limit: c.pageSize, Offset: offset, Query: query}, &resp)
		return resp.Data.Groups, err
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.TargetGroup, 0, len(groups))
	for _, g := range groups {
		result = append(result, domain.TargetGroup{ID: g.ID, Name: g.Name})
	}
	return result, nil
}

// ListGroupMembers возвращает идентификаторы пользователей группы.
func (c *Client) ListGroupMembers(ctx context.Context, groupID string) ([]string, error) {
	memberships, err := paginate(c.pageSize, func(offset int) ([]membership, error) {
		var resp membershipsResponse
		err := c.post(ctx, "groups.memberships", page{Limit: c.pageSize, Offset: offset, ID: groupID}, &resp)
		return resp.Data.GroupMemberships, err
	})
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
	}
	return userIDs, nil
}

// CreateGroup создает группу и возвращает ее идентификатор.
func (c *Client) CreateGroup(ctx context.Context, name string) (string, error) {
	var resp groupResponse
	if err := c.post(ctx, "groups.create", groupRequest{Name: name}, &resp); err != nil {
		return "", err
	}
	return resp.Data.ID, nil
}

// DeleteGroup удаляет группу. Если группа не найдена, возвращает domain.ErrNotFound.
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	return notFound(c.post(ctx, "groups.delete", groupRequest{ID: groupID}, nil))
}

// AddMember добавляет пользователя в группу.
func (c *Client) AddMember(ctx context.Context, groupID, userID string) error {
	return notFound(c.post(ctx, "groups.add_user", groupRequest{ID: groupID, UserID: userID}, nil))
}

// RemoveMember исключает пользователя из группы. Если группа не найдена, возвращает domain.ErrNotFound.
func (c *Client) RemoveMember(ctx context.Context, groupID, userID string) error {
	return notFound(c.post(ctx, "groups.remove_user", groupRequest{ID: groupID, UserID: userID}, nil))
}

// FindGroupIDByName ищет группу по точному совпадению имени.
func (c *Client) FindGroupIDByName(ctx context.Context, name string) (string, bool, error) {
	groups, err := c.listGroups(ctx, name)
	if err != nil {
		return "", false, err
	}

	// query в Outline ищет по подстроке, поэтому сравниваем имя целиком
	for _, g := range groups {
		if g.Name == name {
			return g.ID, true, nil
		}
	}
	return "", false, nil
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}
