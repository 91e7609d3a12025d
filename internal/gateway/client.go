package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bookconsole/internal/book"
	"bookconsole/internal/user"
)

// Credentials supplies the bearer token for authorized calls.
type Credentials interface {
	BearerToken() string
}

// Token is a bare bearer token.
type Token string

func (t Token) BearerToken() string { return string(t) }

// Client talks to the bookshop REST API. Every call is issued exactly once:
// there are no retries and, unless a timeout is configured, no deadline other
// than the caller's context.
type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) ListBooks(ctx context.Context) ([]book.Book, error) {
	var books []book.Book
	if _, err := c.do(ctx, call{op: "list books", method: http.MethodGet, path: "/api/books/list", failMsg: MsgListBooks, target: &books}); err != nil {
		return nil, err
	}
	if books == nil {
		books = []book.Book{}
	}
	return books, nil
}

func (c *Client) GetBook(ctx context.Context, id int64) (book.Book, error) {
	var b book.Book
	if _, err := c.do(ctx, call{op: "get book", method: http.MethodGet, path: bookPath(id), failMsg: MsgGetBook, target: &b}); err != nil {
		return book.Book{}, err
	}
	return b, nil
}

func (c *Client) CreateBook(ctx context.Context, b book.Book) (book.Book, error) {
	var created book.Book
	if _, err := c.do(ctx, call{op: "create book", method: http.MethodPost, path: "/api/books", body: b, failMsg: MsgCreateBook, target: &created}); err != nil {
		return book.Book{}, err
	}
	return created, nil
}

func (c *Client) UpdateBook(ctx context.Context, id int64, b book.Book) (book.Book, error) {
	var updated book.Book
	if _, err := c.do(ctx, call{op: "update book", method: http.MethodPut, path: bookPath(id), body: b, failMsg: MsgUpdateBook, target: &updated}); err != nil {
		return book.Book{}, err
	}
	return updated, nil
}

// DeleteBook returns the deleted book as echoed by the API. An empty body
// yields a book carrying only the id.
func (c *Client) DeleteBook(ctx context.Context, id int64) (book.Book, error) {
	deleted := book.Book{ID: id}
	if _, err := c.do(ctx, call{op: "delete book", method: http.MethodDelete, path: bookPath(id), failMsg: MsgDeleteBook, target: &deleted, allowEmpty: true}); err != nil {
		return book.Book{}, err
	}
	return deleted, nil
}

// ListUsers sends the session's bearer token. A missing token is not
// special-cased: the API's rejection surfaces as the usual StatusError.
func (c *Client) ListUsers(ctx context.Context, creds Credentials) ([]user.User, error) {
	header := http.Header{}
	if creds != nil {
		if token := creds.BearerToken(); token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}
	var users []user.User
	if _, err := c.do(ctx, call{op: "list users", method: http.MethodGet, path: "/api/users/list", header: header, failMsg: MsgListUsers, target: &users}); err != nil {
		return nil, err
	}
	if users == nil {
		users = []user.User{}
	}
	return users, nil
}

// Login exchanges credentials for the token the API returns in its
// Authorization response header.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := c.do(ctx, call{op: "login", method: http.MethodPost, path: "/login", body: loginRequest{Username: username, Password: password}, failMsg: MsgLogin})
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(resp.Header.Get("Authorization"))
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func bookPath(id int64) string {
	return fmt.Sprintf("/api/books/%d", id)
}

type call struct {
	op      string
	method  string
	path    string
	header  http.Header
	body    any
	failMsg string
	// target receives the decoded body; nil skips decoding.
	target     any
	allowEmpty bool
}

// do performs one request. Transport errors are returned unchanged, non-2xx
// answers become a StatusError carrying the call's message and bodies that do
// not decode into the target become a DecodeError.
func (c *Client) do(ctx context.Context, cl call) (*http.Response, error) {
	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", cl.op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reader)
	if err != nil {
		return nil, err
	}
	for k, v := range cl.header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Message: cl.failMsg, StatusCode: resp.StatusCode}
	}

	if cl.target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if cl.allowEmpty {
			return resp, nil
		}
		return nil, &DecodeError{Op: cl.op, Err: io.ErrUnexpectedEOF}
	}
	if err := json.Unmarshal(raw, cl.target); err != nil {
		return nil, &DecodeError{Op: cl.op, Err: err}
	}
	return resp, nil
}
