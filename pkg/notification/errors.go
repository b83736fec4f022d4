package notification

import (
	"errors"
)

var (
	ErrTeamIdRequired              = errors.New("team id is required")
	ErrNotificationIdAlreadyExists = errors.New("notification id already exists")
	ErrCreateOptionsRequired       = errors.New("create options are required")
)
