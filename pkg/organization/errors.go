package organization

import (
	"errors"
)

var (
	ErrNameRequired                = errors.New("name is required")
	ErrOrganizationNotFound        = errors.New("organization not found")
	ErrOrganizationIdAlreadyExists = errors.New("organization id already exists")
	ErrCreateOptionsRequired       = errors.New("create options are required")
	ErrUpdateOptionsRequired       = errors.New("update options are required")
	ErrUpdateFieldMaskRequired     = errors.New("update field mask are required")
)
