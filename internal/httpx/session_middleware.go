package httpx

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"bookconsole/internal/session"
)

const SessionCookieName = "bookconsole_session"

// SessionResolver turns a cookie value into a live session.
type SessionResolver interface {
	Get(ctx context.Context, id string) (session.Session, error)
}

// SessionCookies writes and clears the session cookie.
type SessionCookies struct {
	Secure bool
}

func (c SessionCookies) Set(w http.ResponseWriter, s session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionIDFrom returns the raw session cookie value, if any.
func SessionIDFrom(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// RequireSession redirects requests without a live session to loginPath.
// onGone is called with the cookie value of sessions that expired or no
// longer exist so their state can be released.
func RequireSession(resolver SessionResolver, cookies SessionCookies, loginPath string, onGone func(id string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := SessionIDFrom(r)
			if id == "" {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			s, err := resolver.Get(r.Context(), id)
			if err != nil {
				switch {
				case errors.Is(err, session.ErrExpired), errors.Is(err, session.ErrNotFound):
					if onGone != nil {
						onGone(id)
					}
				default:
					log.Printf("session lookup failed: request_id=%s error=%v", RequestIDFrom(r), err)
					JSONErrorWithRequest(r, w, http.StatusServiceUnavailable, "session_unavailable", "Session store unavailable", nil)
					return
				}
				cookies.Clear(w)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), s)))
		})
	}
}
