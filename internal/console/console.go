package console

import (
	"context"
	"errors"

	"bookconsole/internal/book"
	"bookconsole/internal/gateway"
	"bookconsole/internal/user"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks bookconsole/internal/console Gateway

// Gateway is the subset of the bookshop API the console drives.
type Gateway interface {
	ListBooks(ctx context.Context) ([]book.Book, error)
	GetBook(ctx context.Context, id int64) (book.Book, error)
	CreateBook(ctx context.Context, b book.Book) (book.Book, error)
	UpdateBook(ctx context.Context, id int64, b book.Book) (book.Book, error)
	DeleteBook(ctx context.Context, id int64) (book.Book, error)
	ListUsers(ctx context.Context, creds gateway.Credentials) ([]user.User, error)
}

// Tab is one of the two console pages.
type Tab string

const (
	TabUsers Tab = "users"
	TabBooks Tab = "books"
)

// ParseTab maps a path segment to a tab, defaulting to users.
func ParseTab(s string) Tab {
	if Tab(s) == TabBooks {
		return TabBooks
	}
	return TabUsers
}

// Title is the navbar heading for the tab.
func (t Tab) Title() string {
	if t == TabBooks {
		return "Book Management"
	}
	return "User Management"
}

var (
	// ErrInvalidForm is returned by the submit operations when the form
	// still has field errors. The dialog stays open.
	ErrInvalidForm = errors.New("form has errors")
	// ErrDialogClosed is returned when an event arrives for a dialog that is
	// not open.
	ErrDialogClosed = errors.New("dialog is not open")
)
