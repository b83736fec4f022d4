package user

import (
	"errors"
)

var (
	ErrEmailRequired           = errors.New("email is required")
	ErrEmailInvalid            = errors.New("email is invalid")
	ErrUserNotFound            = errors.New("user not found")
	ErrUserIdAlreadyExists     = errors.New("user id already exists")
	ErrCreateOptionsRequired   = errors.New("create options are required")
	ErrUpdateOptionsRequired   = errors.New("update options are required")
	ErrUpdateFieldMaskRequired = errors.New("update field mask are required")
)
