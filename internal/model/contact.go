package model

import "time"

// Contact is a record owned by a user. Owner holds the user's name, not the user id.
type Contact struct {
	ID        string    `json:"id"`
	Owner     string    `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactRequest is used for both creating and updating a contact
type ContactRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

// ContactList is the payload of the list and get-by-id routes.
// Count is a decimal string to keep the payload shape clients already parse.
type ContactList struct {
	Message  string    `json:"message"`
	Contacts []Contact `json:"contacts"`
	Count    string    `json:"count"`
}
