package manage

import (
	"errors"
)

var (
	ErrViewerRequired = errors.New("viewer is required")
	ErrForbidden      = errors.New("viewer is not allowed to perform this action")
	ErrAlreadySeeded  = errors.New("demo data is already seeded")
)
