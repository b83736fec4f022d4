package auth

import (
	"errors"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrSubjectMissing  = errors.New("token has no subject")
)
