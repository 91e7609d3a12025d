package user

import (
	"strconv"

	"bookconsole/internal/column"
)

// User is a bookshop account as listed by the API. The console never
// modifies users.
type User struct {
	ID             int64  `json:"userID"`
	Username       string `json:"username"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"emailAddress"`
	Phone          string `json:"phoneNumber"`
	ProfilePicture string `json:"profilePicture"`
	Role           string `json:"role"` // USER, ADMIN
	Enabled        bool   `json:"enabled"`
	Locked         bool   `json:"locked"`
}

// Columns is the canonical column list of the users table.
var Columns = column.NewRegistry([]column.Meta{
	{Field: "userID", Header: "ID"},
	{Field: "username", Header: "Username"},
	{Field: "emailAddress", Header: "Email"},
	{Field: "firstName", Header: "First Name"},
	{Field: "lastName", Header: "Last Name"},
	{Field: "phoneNumber", Header: "Phone Number"},
	{Field: "role", Header: "Role"},
	{Field: "enabled", Header: "Enabled"},
	{Field: "locked", Header: "Locked"},
	{Field: "profilePicture", Header: "Profile Picture"},
},
	"userID", "username", "emailAddress", "firstName", "lastName", "phoneNumber", "role",
)

func (u User) Value(field string) any {
	switch field {
	case "userID":
		return u.ID
	case "username":
		return u.Username
	case "emailAddress":
		return u.Email
	case "firstName":
		return u.FirstName
	case "lastName":
		return u.LastName
	case "phoneNumber":
		return u.Phone
	case "role":
		return u.Role
	case "enabled":
		return u.Enabled
	case "locked":
		return u.Locked
	case "profilePicture":
		return u.ProfilePicture
	}
	return nil
}

func (u User) Cell(field string) string {
	switch v := u.Value(field).(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
