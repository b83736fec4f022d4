package teammember

import (
	"errors"
)

var (
	ErrTeamIdRequired        = errors.New("team id is required")
	ErrUserIdRequired        = errors.New("user id is required")
	ErrTeamMemberNotFound    = errors.New("team member not found")
	ErrTeamMemberExists      = errors.New("team member already exists")
	ErrCreateOptionsRequired = errors.New("create options are required")
)
