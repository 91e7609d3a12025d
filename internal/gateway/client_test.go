package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookconsole/internal/book"
	"bookconsole/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(api *testutil.BookshopAPI) *Client {
	return NewClient(api.URL, "bookconsole-test", 0)
}

func TestClient_Books(t *testing.T) {
	api := testutil.NewBookshopAPI(t)
	c := newTestClient(api)
	ctx := context.Background()

	books, err := c.ListBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, api.Books(), books)

	got, err := c.GetBook(ctx, testutil.TestBook.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.TestBook, got)

	newBook := book.Book{Title: "Emma", Author: "Jane Austen", Publisher: "John Murray", Genre: "Novel", PageCount: 474}
	created, err := c.CreateBook(ctx, newBook)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Emma", created.Title)

	created.PageCount = 480
	updated, err := c.UpdateBook(ctx, created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, 480, updated.PageCount)

	deleted, err := c.DeleteBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Len(t, api.Books(), 1)
}

func TestClient_StatusErrorsCarryFixedMessages(t *testing.T) {
	api := testutil.NewBookshopAPI(t)
	c := newTestClient(api)
	ctx := context.Background()

	tests := []struct {
		name    string
		pattern string
		call    func() error
		message string
	}{
		{"list books", "GET /api/books/list", func() error { _, err := c.ListBooks(ctx); return err }, MsgListBooks},
		{"get book", "GET /api/books/{id}", func() error { _, err := c.GetBook(ctx, 5); return err }, MsgGetBook},
		{"create book", "POST /api/books", func() error { _, err := c.CreateBook(ctx, testutil.TestBook); return err }, MsgCreateBook},
		{"update book", "PUT /api/books/{id}", func() error { _, err := c.UpdateBook(ctx, 5, testutil.TestBook); return err }, MsgUpdateBook},
		{"delete book", "DELETE /api/books/{id}", func() error { _, err := c.DeleteBook(ctx, 5); return err }, MsgDeleteBook},
		{"list users", "GET /api/users/list", func() error { _, err := c.ListUsers(ctx, Token(api.Token)); return err }, MsgListUsers},
		{"login", "POST /login", func() error { _, err := c.Login(ctx, "admin", "secret"); return err }, MsgLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api.Fail(tt.pattern, http.StatusInternalServerError)
			defer api.Recover(tt.pattern)

			err := tt.call()
			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
		})
	}
}

func TestClient_GetBookNotFound(t *testing.T) {
	api := testutil.NewBookshopAPI(t)
	c := newTestClient(api)

	_, err := c.GetBook(context.Background(), 999)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, MsgGetBook, se.Error())
}

func TestClient_ListUsers(t *testing.T) {
	api := testutil.NewBookshopAPI(t)
	c := newTestClient(api)
	ctx := context.Background()

	t.Run("with token", func(t *testing.T) {
		users, err := c.ListUsers(ctx, Token(api.Token))
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("missing token", func(t *testing.T) {
		users, err := c.ListUsers(ctx, Token(""))
		assert.Nil(t, users)
		assert.EqualError(t, err, MsgListUsers)
		assert.True(t, IsUnauthorized(err))
	})

	t.Run("nil credentials", func(t *testing.T) {
		_, err := c.ListUsers(ctx, nil)
		assert.True(t, IsUnauthorized(err))
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := c.ListUsers(ctx, Token("forged"))
		assert.True(t, IsUnauthorized(err))
	})

	t.Run("non-admin token", func(t *testing.T) {
		_, err := c.ListUsers(ctx, Token(api.TokenFor("testuser", "USER")))
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusForbidden, se.StatusCode)
		assert.True(t, IsUnauthorized(err))
	})
}

func TestClient_Login(t *testing.T) {
	api := testutil.NewBookshopAPI(t)
	c := newTestClient(api)
	ctx := context.Background()

	token, err := c.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, api.Token, token)

	_, err = c.Login(ctx, "admin", "wrong")
	assert.True(t, IsUnauthorized(err))
}

func TestClient_LoginWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", 0).Login(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestClient_LoginRawToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "raw-token")
	}))
	defer srv.Close()

	token, err := NewClient(srv.URL, "", 0).Login(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "raw-token", token)
}

func TestClient_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		call func(c *Client) error
	}{
		{
			name: "wrong type",
			body: `[{"bookID":"five"}]`,
			call: func(c *Client) error { _, err := c.ListBooks(context.Background()); return err },
		},
		{
			name: "object instead of list",
			body: `{"bookID":5}`,
			call: func(c *Client) error { _, err := c.ListBooks(context.Background()); return err },
		},
		{
			name: "truncated json",
			body: `{"bookID":5,`,
			call: func(c *Client) error { _, err := c.GetBook(context.Background(), 5); return err },
		},
		{
			name: "empty body for get",
			body: ``,
			call: func(c *Client) error { _, err := c.GetBook(context.Background(), 5); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			err := tt.call(NewClient(srv.URL, "", 0))
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.NotEmpty(t, de.Op)
		})
	}
}

func TestClient_DeleteWithEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/books/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	deleted, err := NewClient(srv.URL, "", 0).DeleteBook(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), deleted.ID)
}

func TestClient_SendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "bookconsole-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	users, err := NewClient(srv.URL+"/", "bookconsole-test", 0).ListUsers(context.Background(), Token("tok"))
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestClient_NetworkErrorPropagatesUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "", 0).ListBooks(context.Background())
	require.Error(t, err)
	var se *StatusError
	var de *DecodeError
	assert.False(t, errors.As(err, &se))
	assert.False(t, errors.As(err, &de))
}

func TestClient_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL, "", 0).ListBooks(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_SingleAttempt(t *testing.T) {
	api := testutil.NewBookshopAPI(t)
	api.Fail("GET /api/books/list", http.StatusServiceUnavailable)

	_, err := newTestClient(api).ListBooks(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, api.Count("GET /api/books/list"))
}
