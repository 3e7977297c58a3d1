package service

import "errors"

// Sentinel errors services return so handlers can map them onto the HTTP
// error taxonomy without string matching.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLicenseExpired is the distinguished staff-login rejection: clients
	// show a blocking license notice instead of a credentials error.
	ErrLicenseExpired = errors.New("shop license has expired")
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidPayload wraps semantic validation failures that the struct
	// validator cannot express (cross-field UoM rules and the like).
	ErrInvalidPayload = errors.New("invalid payload")
	ErrOwnerHasShops  = errors.New("owner still has shops and cannot be deleted")
	ErrShopHasStaff   = errors.New("shop still has staff and cannot be deleted")
)
