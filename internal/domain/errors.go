// Package domain holds the error taxonomy shared by the repo and
// service layers. HTTP status mapping happens once, in httpserver.
package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("invalid input")
	ErrLastAdmin          = errors.New("cannot delete the last administrator")
)
