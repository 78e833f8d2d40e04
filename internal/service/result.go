package service

import "contacts_api/internal/model"

// Status tags the outcome of a business operation. Infrastructure failures
// are not a Status; they come back as a non-nil error.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusConflict
	StatusUnauthorized
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusConflict:
		return "conflict"
	case StatusUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Messages returned to clients. The wording is relied upon by existing consumers.
const (
	MsgUserRegistered     = "User registered successfully!"
	MsgEmailRegistered    = "Email already registered!"
	MsgNameTaken          = "Name already taken!"
	MsgUserExists         = "User already exists!"
	MsgInvalidCredentials = "Incorrect email or password!"
	MsgSignedIn           = "Signed in successfully!"

	MsgUserNotFound    = "User not found!"
	MsgContactExists   = "Email or phone number already exists!"
	MsgContactSaved    = "Contact saved successfully!"
	MsgContactsFound   = "Contacts retrieved successfully!"
	MsgNoContacts      = "No contacts found"
	MsgContactMissing  = "Contact not found"
	MsgContactNotFound = "Contact not found!"
	MsgContactUpdated  = "Contact updated successfully!"
	MsgContactDeleted  = "Contact deleted successfully!"
)

// Result is the tagged outcome shared by all services
type Result struct {
	Status  Status
	Message string
}

// OK reports whether the operation succeeded
func (r Result) OK() bool {
	return r.Status == StatusOK
}

func result(status Status, message string) Result {
	return Result{Status: status, Message: message}
}

// ContactResult is returned by ContactService. Contacts is never nil for
// list and get so it serializes as an empty array.
type ContactResult struct {
	Result
	Contact  *model.Contact
	Contacts []model.Contact
}

// AuthResult is returned by AuthService
type AuthResult struct {
	Result
	User  *model.User
	Token string
}
