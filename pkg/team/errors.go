package team

import (
	"errors"
)

var (
	ErrNameRequired          = errors.New("name is required")
	ErrOrgIdRequired         = errors.New("organization id is required")
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamIdAlreadyExists   = errors.New("team id already exists")
	ErrTeamAlreadyArchived   = errors.New("already archived team")
	ErrCreateOptionsRequired = errors.New("create options are required")
)
