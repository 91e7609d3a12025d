package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"bookconsole/internal/book"
	"bookconsole/internal/platform/crypto"
	"bookconsole/internal/user"
)

// TestBook is a complete book as the API would return it.
var TestBook = book.Book{
	ID:             5,
	ISBN10:         "0441172717",
	ISBN13:         "9780441172719",
	Title:          "Dune",
	Description:    "Desert planet politics",
	Genre:          "Science Fiction",
	Author:         "Frank Herbert",
	Publisher:      "Chilton Books",
	Language:       "English",
	PageCount:      412,
	ReleaseDate:    "1965-08-01",
	HardcoverPrice: 29.99,
	PaperbackPrice: 10.99,
	EbookPrice:     9.99,
	AudiobookPrice: 24.5,
	Ratings:        4.3,
	RatingsCount:   1500,
}

// TestUser is a regular account.
var TestUser = user.User{
	ID:        1,
	Username:  "testuser",
	FirstName: "Test",
	LastName:  "User",
	Email:     "test@example.com",
	Phone:     "555-0100",
	Role:      "USER",
	Enabled:   true,
}

// TestAdminUser is an administrator account.
var TestAdminUser = user.User{
	ID:        2,
	Username:  "adminuser",
	FirstName: "Admin",
	LastName:  "User",
	Email:     "admin@example.com",
	Role:      "ADMIN",
	Enabled:   true,
}

// GenerateTestToken generates a JWT token for testing
func GenerateTestToken(secret, subject, role string) string {
	token, _, _ := crypto.GenerateToken(secret, subject, role, time.Hour)
	return token
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewFormRequest creates a form post for testing
func NewFormRequest(method, path string, values url.Values) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   string
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   string(bodyBytes),
	}
}
