package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"bookconsole/internal/book"
	"bookconsole/internal/platform/crypto"
	"bookconsole/internal/user"
)

const testSecret = "bookshop-test-secret"

// BookshopAPI is an in-memory stand-in for the remote bookshop REST API.
type BookshopAPI struct {
	*httptest.Server

	Username string
	Password string
	Token    string

	mu       sync.Mutex
	books    map[int64]book.Book
	nextID   int64
	users    []user.User
	failures map[string]int
	requests []string
}

// NewBookshopAPI starts a fake API seeded with TestBook and the two test
// users. It accepts the login admin/secret.
func NewBookshopAPI(t testing.TB) *BookshopAPI {
	a := &BookshopAPI{
		Username: "admin",
		Password: "secret",
		Token:    GenerateTestToken(testSecret, "admin", "ADMIN"),
		books:    map[int64]book.Book{TestBook.ID: TestBook},
		nextID:   TestBook.ID + 1,
		users:    []user.User{TestUser, TestAdminUser},
		failures: map[string]int{},
	}

	mux := http.NewServeMux()
	a.handle(mux, "GET /api/books/list", a.listBooks)
	a.handle(mux, "GET /api/books/{id}", a.getBook)
	a.handle(mux, "POST /api/books", a.createBook)
	a.handle(mux, "PUT /api/books/{id}", a.updateBook)
	a.handle(mux, "DELETE /api/books/{id}", a.deleteBook)
	a.handle(mux, "GET /api/users/list", a.listUsers)
	a.handle(mux, "POST /login", a.login)

	a.Server = httptest.NewServer(mux)
	t.Cleanup(a.Server.Close)
	return a
}

// Fail makes every request matching pattern (e.g. "GET /api/books/list")
// answer with status until Recover is called.
func (a *BookshopAPI) Fail(pattern string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[pattern] = status
}

func (a *BookshopAPI) Recover(pattern string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.failures, pattern)
}

// Books returns the stored books ordered by id.
func (a *BookshopAPI) Books() []book.Book {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sortedBooks()
}

// PutBook stores b as is, keeping its id.
func (a *BookshopAPI) PutBook(b book.Book) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.books[b.ID] = b
	if b.ID >= a.nextID {
		a.nextID = b.ID + 1
	}
}

// TokenFor issues a token the fake API accepts, carrying role.
func (a *BookshopAPI) TokenFor(subject, role string) string {
	return GenerateTestToken(testSecret, subject, role)
}

// Requests returns the patterns served so far, in order.
func (a *BookshopAPI) Requests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.requests...)
}

// Count returns how often pattern was requested.
func (a *BookshopAPI) Count(pattern string) int {
	n := 0
	for _, p := range a.Requests() {
		if p == pattern {
			n++
		}
	}
	return n
}

func (a *BookshopAPI) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.requests = append(a.requests, pattern)
		status, failing := a.failures[pattern]
		a.mu.Unlock()
		if failing {
			http.Error(w, http.StatusText(status), status)
			return
		}
		h(w, r)
	})
}

func (a *BookshopAPI) sortedBooks() []book.Book {
	out := make([]book.Book, 0, len(a.books))
	for _, b := range a.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *BookshopAPI) listBooks(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	books := a.sortedBooks()
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, books)
}

func (a *BookshopAPI) bookID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (a *BookshopAPI) getBook(w http.ResponseWriter, r *http.Request) {
	id, ok := a.bookID(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	b, found := a.books[id]
	a.mu.Unlock()
	if !found {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *BookshopAPI) createBook(w http.ResponseWriter, r *http.Request) {
	var b book.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}
	a.mu.Lock()
	b.ID = a.nextID
	a.nextID++
	a.books[b.ID] = b
	a.mu.Unlock()
	writeJSON(w, http.StatusCreated, b)
}

func (a *BookshopAPI) updateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := a.bookID(w, r)
	if !ok {
		return
	}
	var b book.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, found := a.books[id]; !found {
		http.NotFound(w, r)
		return
	}
	b.ID = id
	a.books[id] = b
	writeJSON(w, http.StatusOK, b)
}

func (a *BookshopAPI) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := a.bookID(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	b, found := a.books[id]
	if !found {
		http.NotFound(w, r)
		return
	}
	delete(a.books, id)
	writeJSON(w, http.StatusOK, b)
}

func (a *BookshopAPI) listUsers(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	claims, err := crypto.ParseToken(testSecret, token)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if claims.Role != "ADMIN" {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	a.mu.Lock()
	users := append([]user.User(nil), a.users...)
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, users)
}

func (a *BookshopAPI) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}
	if req.Username != a.Username || req.Password != a.Password {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Authorization", "Bearer "+a.Token)
	w.WriteHeader(http.StatusOK)
}
