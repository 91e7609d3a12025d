package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookconsole/internal/book"
	"bookconsole/internal/console"
	"bookconsole/internal/gateway"
	"bookconsole/internal/httpx"
	"bookconsole/internal/session"
)

// Sessions is what the handlers need from the session service.
type Sessions interface {
	Login(ctx context.Context, username, password string) (session.Session, error)
	Logout(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (session.Session, error)
}

// ReadyFunc reports whether the console's dependencies are usable.
type ReadyFunc func(ctx context.Context) error

type Handler struct {
	sessions Sessions
	views    *console.Registry
	cookies  httpx.SessionCookies
	ready    ReadyFunc
}

func NewHandler(sessions Sessions, views *console.Registry, cookies httpx.SessionCookies, ready ReadyFunc) *Handler {
	if ready == nil {
		ready = func(context.Context) error { return nil }
	}
	return &Handler{
		sessions: sessions,
		views:    views,
		cookies:  cookies,
		ready:    ready,
	}
}

// Routes registers every console route on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)

	auth := httpx.RequireSession(h.sessions, h.cookies, "/login", h.views.Drop)
	protect := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, auth(fn))
	}

	protect("POST /logout", h.Logout)
	protect("GET /{$}", h.Home)
	protect("GET /users", h.Users)
	protect("GET /books", h.Books)
	protect("POST /users/columns", h.UserColumns)
	protect("POST /books/columns", h.BookColumns)
	protect("POST /refresh", h.Refresh)

	protect("GET /books/new", h.OpenAdd)
	protect("POST /books", h.SubmitAdd)
	protect("POST /books/new/cancel", h.CancelAdd)

	protect("GET /books/{id}/edit", h.OpenEdit)
	protect("POST /books/{id}", h.SubmitEdit)
	protect("POST /books/{id}/edit/cancel", h.CancelEdit)

	protect("GET /books/{id}/delete", h.OpenDelete)
	protect("POST /books/{id}/delete", h.ConfirmDelete)
	protect("POST /books/{id}/delete/cancel", h.CancelDelete)

	return mux
}

// Healthz handles GET /healthz
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccessWithRequest(r, w, http.StatusOK, map[string]string{"status": "ok"}, nil)
}

// Readyz handles GET /readyz
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
	defer cancel()
	if err := h.ready(ctx); err != nil {
		log.Printf("readiness failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONErrorWithRequest(r, w, http.StatusServiceUnavailable, "not_ready", "Not ready", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, http.StatusOK, map[string]string{"status": "ready"}, nil)
}

// LoginPage handles GET /login
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	renderLogin(w, http.StatusOK, loginData{})
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderLogin(w, http.StatusBadRequest, loginData{Error: "Invalid form"})
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		renderLogin(w, http.StatusBadRequest, loginData{Username: username, Error: "Username and password are required"})
		return
	}

	s, err := h.sessions.Login(r.Context(), username, password)
	if err != nil {
		log.Printf("login failed: request_id=%s username=%s error=%v", httpx.RequestIDFrom(r), username, err)
		status := http.StatusBadGateway
		if gateway.IsUnauthorized(err) {
			status = http.StatusUnauthorized
		}
		renderLogin(w, status, loginData{Username: username, Error: gateway.MsgLogin})
		return
	}

	h.cookies.Set(w, s)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	s, _ := httpx.SessionFrom(r)
	if err := h.sessions.Logout(r.Context(), s.ID); err != nil {
		log.Printf("logout failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
	}
	h.views.Drop(s.ID)
	h.cookies.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) view(r *http.Request) *console.View {
	s, _ := httpx.SessionFrom(r)
	return h.views.View(r.Context(), s.ID, s)
}

func tabPath(t console.Tab) string {
	return "/" + string(t)
}

func redirectTo(w http.ResponseWriter, r *http.Request, t console.Tab) {
	http.Redirect(w, r, tabPath(t), http.StatusSeeOther)
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, h.view(r).Snapshot().Tab)
}

// Users handles GET /users
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	h.tabPage(w, r, console.TabUsers)
}

// Books handles GET /books
func (h *Handler) Books(w http.ResponseWriter, r *http.Request) {
	h.tabPage(w, r, console.TabBooks)
}

func (h *Handler) tabPage(w http.ResponseWriter, r *http.Request, t console.Tab) {
	v := h.view(r)
	v.SelectTab(t)
	query := r.URL.Query()
	if query.Has("q") {
		v.SetFilter(query.Get("q"))
	}
	h.render(w, r, v, http.StatusOK)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, v *console.View, status int) {
	s, _ := httpx.SessionFrom(r)
	data := buildPage(v.Snapshot(), v.Notifications(), parseListQuery(r.URL.Query()), s.Username)
	renderConsole(w, status, data)
}

// UserColumns handles POST /users/columns
func (h *Handler) UserColumns(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	h.view(r).ToggleUserColumns(r.PostForm["columns"])
	redirectTo(w, r, console.TabUsers)
}

// BookColumns handles POST /books/columns
func (h *Handler) BookColumns(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	h.view(r).ToggleBookColumns(r.PostForm["columns"])
	redirectTo(w, r, console.TabBooks)
}

// Refresh handles POST /refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	v := h.view(r)
	v.Refresh(r.Context())
	redirectTo(w, r, v.Snapshot().Tab)
}

// OpenAdd handles GET /books/new
func (h *Handler) OpenAdd(w http.ResponseWriter, r *http.Request) {
	v := h.view(r)
	v.SelectTab(console.TabBooks)
	v.OpenAdd()
	redirectTo(w, r, console.TabBooks)
}

// SubmitAdd handles POST /books
func (h *Handler) SubmitAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	v := h.view(r)
	h.afterSubmit(w, r, v, v.SubmitAdd(r.Context(), bookFormValues(r)))
}

// CancelAdd handles POST /books/new/cancel
func (h *Handler) CancelAdd(w http.ResponseWriter, r *http.Request) {
	h.view(r).CancelAdd()
	redirectTo(w, r, console.TabBooks)
}

// OpenEdit handles GET /books/{id}/edit
func (h *Handler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}
	v := h.view(r)
	v.SelectTab(console.TabBooks)
	_ = v.OpenEdit(r.Context(), id)
	redirectTo(w, r, console.TabBooks)
}

// SubmitEdit handles POST /books/{id}
func (h *Handler) SubmitEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	v := h.view(r)
	if snap := v.Snapshot(); !snap.EditOpen || snap.Selected.ID != id {
		redirectTo(w, r, console.TabBooks)
		return
	}
	h.afterSubmit(w, r, v, v.SubmitEdit(r.Context(), bookFormValues(r)))
}

// CancelEdit handles POST /books/{id}/edit/cancel
func (h *Handler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	if _, ok := bookID(w, r); !ok {
		return
	}
	h.view(r).CancelEdit()
	redirectTo(w, r, console.TabBooks)
}

// OpenDelete handles GET /books/{id}/delete
func (h *Handler) OpenDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}
	v := h.view(r)
	v.SelectTab(console.TabBooks)
	_ = v.OpenDelete(r.Context(), id)
	redirectTo(w, r, console.TabBooks)
}

// ConfirmDelete handles POST /books/{id}/delete
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}
	v := h.view(r)
	if snap := v.Snapshot(); snap.DeleteOpen && snap.Selected.ID == id {
		_ = v.ConfirmDelete(r.Context())
	}
	redirectTo(w, r, console.TabBooks)
}

// CancelDelete handles POST /books/{id}/delete/cancel
func (h *Handler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := bookID(w, r); !ok {
		return
	}
	h.view(r).CancelDelete()
	redirectTo(w, r, console.TabBooks)
}

// afterSubmit answers a dialog post. Field errors re-render the page with
// the dialog open; everything else goes back to the books tab.
func (h *Handler) afterSubmit(w http.ResponseWriter, r *http.Request, v *console.View, err error) {
	if errors.Is(err, console.ErrInvalidForm) {
		v.SelectTab(console.TabBooks)
		r.URL.RawQuery = ""
		h.render(w, r, v, http.StatusUnprocessableEntity)
		return
	}
	redirectTo(w, r, console.TabBooks)
}

func bookID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid book id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func bookFormValues(r *http.Request) map[string]string {
	values := make(map[string]string, len(book.FormFields))
	for _, f := range book.FormFields {
		if r.PostForm.Has(f) {
			values[f] = r.PostForm.Get(f)
		}
	}
	return values
}
