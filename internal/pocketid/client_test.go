package pocketid_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"group-sync-service/internal/domain"
	"group-sync-service/internal/pocketid"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestClient_ListUsers_Pagination(t *testing.T) {
	var pages []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "2", r.URL.Query().Get("pagination[limit]"))

		page, _ := strconv.Atoi(r.URL.Query().Get("pagination[page]"))
		pages = append(pages, page)

		w.Header().Set("Content-Type", "application/json")
		switch page {
		case 1:
			fmt.Fprint(w, `{"data":[
				{"id":"p1","username":"alice","email":"alice@x","disabled":false,
				 "userGroups":[{"id":"1","name":"eng"},{"id":"2","name":"ops"}],
				 "customClaims":[{"key":"ssh-pubkey","value":"ssh-ed25519 AAAA"}]},
				{"id":"p2","username":"bob","email":null,"disabled":true,"userGroups":[],"customClaims":[]}
			],"pagination":{"totalPages":2,"totalItems":3,"currentPage":1}}`)
		case 2:
			fmt.Fprint(w, `{"data":[
				{"id":"p3","username":"carol","email":"carol@x","userGroups":[{"id":"1","name":"eng"}]}
			],"pagination":{"totalPages":2,"totalItems":3,"currentPage":2}}`)
		default:
			t.Errorf("unexpected page %d", page)
		}
	}))
	defer server.Close()

	client := pocketid.NewClient(server.URL, "secret", 2, time.Second, 0, newTestLogger())
	users, err := client.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, pages)
	require.Len(t, users, 3)

	assert.Equal(t, domain.SourceAccount{
		ID:       "p1",
		Username: "alice",
		Email:    "alice@x",
		Groups:   []string{"eng", "ops"},
		Claims:   map[string]string{"ssh-pubkey": "ssh-ed25519 AAAA"},
	}, users[0])
	assert.Empty(t, users[1].Email)
	assert.True(t, users[1].Disabled)
	assert.Equal(t, []string{"eng"}, users[2].Groups)
}

func TestClient_ListUsers_StopsOnEmptyPage(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// totalPages завышен, пустая страница должна остановить обход
		if r.URL.Query().Get("pagination[page]") == "1" {
			fmt.Fprint(w, `{"data":[{"id":"p1","username":"alice","email":"alice@x"}],"pagination":{"totalPages":5}}`)
			return
		}
		fmt.Fprint(w, `{"data":[],"pagination":{"totalPages":5}}`)
	}))
	defer server.Close()

	client := pocketid.NewClient(server.URL, "secret", 50, time.Second, 0, newTestLogger())
	users, err := client.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 2, calls)
}

func TestClient_ListUsers_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := pocketid.NewClient(server.URL, "wrong", 50, time.Second, 0, newTestLogger())
	users, err := client.ListUsers(context.Background())

	assert.Nil(t, users)
	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusUnauthorized, transportErr.StatusCode)
}

func TestClient_ListUsers_MissingTotalPages(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Query().Get("pagination[page]") {
		case "1":
			fmt.Fprint(w, `{"data":[{"id":"a","username":"alice","email":"alice@x","userGroups":[{"name":"eng"}]}],"pagination":{}}`)
		case "2":
			fmt.Fprint(w, `{"data":[{"id":"b","username":"bob","email":"bob@x","userGroups":[{"name":"ops"}]}],"pagination":{}}`)
		default:
			fmt.Fprint(w, `{"data":[],"pagination":{}}`)
		}
	}))
	defer server.Close()

	client := pocketid.NewClient(server.URL, "secret", 1, time.Second, 0, newTestLogger())
	users, err := client.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b", users[1].ID)
	assert.Equal(t, []string{"ops"}, users[1].Groups)
	assert.Equal(t, 3, calls)
}
