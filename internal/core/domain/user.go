package domain

import "errors"

// Role restricts what a user can see and do.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountDisabled = errors.New("account disabled")
var ErrRecordNotFound = errors.New("record not found")

// User models an operator or administrator of the tracker.
//
// Password is stored as entered; credential checks are a plain field compare.
// It is stripped from every read path, so the JSON tag omits it when empty.
type User struct {
	ID         string `json:"id" bson:"id"`
	Username   string `json:"username" bson:"username"`
	Password   string `json:"password,omitempty" bson:"password,omitempty"`
	Role       Role   `json:"role" bson:"role"`
	Name       string `json:"name" bson:"name"`
	IsDisabled bool   `json:"isDisabled" bson:"isDisabled"`
}

// Sanitized returns a copy of the user with the password removed, for use in
// any response body.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
