package models

import "encoding/json"

// User is a registered account. Passwords are stored as entered.
type User struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`

	// Tasks exists so previously stored users keep decoding. Ownership is
	// derived from Task.OwnerID only; the field is always written as [].
	Tasks []Task `json:"tasks"`
}

// FullName joins first and last name, or falls back to the email.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}

func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	a := alias(u)
	a.Tasks = []Task{}
	return json.Marshal(a)
}
