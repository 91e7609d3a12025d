package console

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"bookconsole/internal/book"
	"bookconsole/internal/column"
	"bookconsole/internal/gateway"
	"bookconsole/internal/user"

	"golang.org/x/sync/errgroup"
)

// View holds one operator's console state. Every operation takes the view
// lock for its whole duration, gateway calls included, so events of one
// session are applied strictly one after another.
type View struct {
	mu     sync.Mutex
	gw     Gateway
	creds  gateway.Credentials
	logger *log.Logger
	now    func() time.Time

	mounted bool
	tab     Tab
	books   []book.Book
	users   []user.User
	filter  string

	bookColumns []column.Meta
	userColumns []column.Meta

	selected   book.Book
	addOpen    bool
	editOpen   bool
	deleteOpen bool
	addForm    *book.FormState
	editForm   *book.FormState

	notes []Notification
}

// NewView creates an unmounted view. creds authorizes the user list.
func NewView(gw Gateway, creds gateway.Credentials, logger *log.Logger) *View {
	if logger == nil {
		logger = log.Default()
	}
	if creds == nil {
		creds = gateway.Token("")
	}
	v := &View{
		gw:          gw,
		creds:       creds,
		logger:      logger,
		now:         time.Now,
		tab:         TabUsers,
		books:       []book.Book{},
		users:       []user.User{},
		bookColumns: book.Columns.Defaults(),
		userColumns: user.Columns.Defaults(),
	}
	v.addForm = book.NewFormState(book.Empty(v.now()))
	v.editForm = book.NewFormState(book.Book{})
	return v
}

// Mount loads books and users concurrently. Each list is assigned on its
// own, so a failing user list does not hold back the books. Failures are
// only logged.
func (v *View) Mount(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.load(ctx, false)
	v.mounted = true
}

// mountOnce mounts the view unless an earlier call already did. A load cut
// short by ctx does not count, so the next request mounts again.
func (v *View) mountOnce(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mounted {
		return
	}
	v.load(ctx, false)
	v.mounted = ctx.Err() == nil
}

// Refresh reloads both lists like Mount, and also reports failures as
// notifications.
func (v *View) Refresh(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.load(ctx, true)
}

func (v *View) load(ctx context.Context, notify bool) {
	var (
		books    []book.Book
		users    []user.User
		booksErr error
		usersErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		books, booksErr = v.gw.ListBooks(ctx)
		return nil
	})
	g.Go(func() error {
		users, usersErr = v.gw.ListUsers(ctx, v.creds)
		return nil
	})
	_ = g.Wait()

	if booksErr != nil {
		v.report("list_books", booksErr, notify)
	} else {
		v.books = nonNilBooks(books)
	}
	if usersErr != nil {
		v.report("list_users", usersErr, notify)
	} else {
		v.users = nonNilUsers(users)
	}
}

// reloadBooks replaces the book list with a fresh copy from the server.
func (v *View) reloadBooks(ctx context.Context) {
	books, err := v.gw.ListBooks(ctx)
	if err != nil {
		v.report("list_books", err, true)
		return
	}
	v.books = nonNilBooks(books)
}

func (v *View) report(op string, err error, notify bool) {
	var statusErr *gateway.StatusError
	switch {
	case gateway.IsUnauthorized(err) && errors.As(err, &statusErr):
		v.logger.Printf("console op=%s unauthorized status=%d error=%v", op, statusErr.StatusCode, err)
	case errors.As(err, &statusErr):
		v.logger.Printf("console op=%s status=%d error=%v", op, statusErr.StatusCode, err)
	default:
		v.logger.Printf("console op=%s error=%v", op, err)
	}
	if notify {
		v.notes = append(v.notes, Notification{
			Severity: SeverityError,
			Summary:  "Error Message",
			Detail:   err.Error(),
			Expires:  v.now().Add(NotificationLife),
		})
	}
}

func (v *View) SelectTab(t Tab) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tab = t
}

func (v *View) SetFilter(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = q
}

// ToggleBookColumns shows exactly the given book fields in canonical order.
func (v *View) ToggleBookColumns(fields []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.bookColumns = book.Columns.Select(fields)
}

// ToggleUserColumns shows exactly the given user fields in canonical order.
func (v *View) ToggleUserColumns(fields []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.userColumns = user.Columns.Select(fields)
}

func (v *View) OpenAdd() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addOpen = true
}

// CancelAdd closes the add dialog and clears its form.
func (v *View) CancelAdd() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addOpen = false
	v.addForm.Reset(book.Empty(v.now()))
}

// SubmitAdd applies values to the add form and creates the book when the
// form is valid. On success the dialog closes and the book list is
// reloaded; otherwise the dialog stays open with the entered values.
func (v *View) SubmitAdd(ctx context.Context, values map[string]string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.addOpen {
		return ErrDialogClosed
	}
	v.addForm.SetAll(values)
	b, ok := v.addForm.Submit()
	if !ok {
		return ErrInvalidForm
	}
	b.ID = 0
	if _, err := v.gw.CreateBook(ctx, b); err != nil {
		v.report("create_book", err, true)
		return err
	}
	v.addOpen = false
	v.addForm.Reset(book.Empty(v.now()))
	v.reloadBooks(ctx)
	return nil
}

// OpenEdit fetches the book and opens the edit dialog seeded with it.
func (v *View) OpenEdit(ctx context.Context, id int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	b, err := v.gw.GetBook(ctx, id)
	if err != nil {
		v.report("get_book", err, true)
		return err
	}
	v.selected = b
	v.editForm.Reset(b)
	v.editOpen = true
	return nil
}

func (v *View) CancelEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editOpen = false
	v.editForm.Reset(v.selected)
}

// SubmitEdit validates the edit form and updates the selected book.
func (v *View) SubmitEdit(ctx context.Context, values map[string]string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.editOpen {
		return ErrDialogClosed
	}
	v.editForm.SetAll(values)
	b, ok := v.editForm.Submit()
	if !ok {
		return ErrInvalidForm
	}
	b.ID = v.selected.ID
	if _, err := v.gw.UpdateBook(ctx, v.selected.ID, b); err != nil {
		v.report("update_book", err, true)
		return err
	}
	v.editOpen = false
	v.reloadBooks(ctx)
	return nil
}

// OpenDelete fetches the book and asks for confirmation.
func (v *View) OpenDelete(ctx context.Context, id int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	b, err := v.gw.GetBook(ctx, id)
	if err != nil {
		v.report("get_book", err, true)
		return err
	}
	v.selected = b
	v.editForm.Reset(b)
	v.deleteOpen = true
	return nil
}

func (v *View) CancelDelete() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.deleteOpen = false
}

// ConfirmDelete deletes the selected book. The dialog closes whatever the
// outcome.
func (v *View) ConfirmDelete(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.deleteOpen {
		return ErrDialogClosed
	}
	v.deleteOpen = false
	if _, err := v.gw.DeleteBook(ctx, v.selected.ID); err != nil {
		v.report("delete_book", err, true)
		return err
	}
	v.reloadBooks(ctx)
	return nil
}

// Notifications returns the notifications still alive and clears the queue.
func (v *View) Notifications() []Notification {
	v.mu.Lock()
	defer v.mu.Unlock()
	now := v.now()
	out := make([]Notification, 0, len(v.notes))
	for _, n := range v.notes {
		if !n.Expired(now) {
			out = append(out, n)
		}
	}
	v.notes = nil
	return out
}

// Snapshot is a copy of a view's state, safe to render without the lock.
type Snapshot struct {
	Tab         Tab
	Books       []book.Book
	Users       []user.User
	Filter      string
	BookColumns []column.Meta
	UserColumns []column.Meta
	Selected    book.Book
	AddOpen     bool
	EditOpen    bool
	DeleteOpen  bool
	AddValues   map[string]string
	AddErrors   book.FieldErrors
	EditValues  map[string]string
	EditErrors  book.FieldErrors
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		Tab:         v.tab,
		Books:       append([]book.Book{}, v.books...),
		Users:       append([]user.User{}, v.users...),
		Filter:      v.filter,
		BookColumns: append([]column.Meta{}, v.bookColumns...),
		UserColumns: append([]column.Meta{}, v.userColumns...),
		Selected:    v.selected,
		AddOpen:     v.addOpen,
		EditOpen:    v.editOpen,
		DeleteOpen:  v.deleteOpen,
		AddValues:   v.addForm.Values(),
		AddErrors:   v.addForm.Errors(),
		EditValues:  v.editForm.Values(),
		EditErrors:  v.editForm.Errors(),
	}
}

func nonNilBooks(b []book.Book) []book.Book {
	if b == nil {
		return []book.Book{}
	}
	return b
}

func nonNilUsers(u []user.User) []user.User {
	if u == nil {
		return []user.User{}
	}
	return u
}
