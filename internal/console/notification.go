package console

import "time"

// NotificationLife is how long a notification stays visible.
const NotificationLife = 3 * time.Second

type Severity string

const (
	SeverityError Severity = "error"
)

// Notification is a dismissible message shown above the tables.
type Notification struct {
	Severity Severity
	Summary  string
	Detail   string
	Expires  time.Time
}

func (n Notification) Expired(now time.Time) bool {
	return !n.Expires.After(now)
}
