package template

import (
	"errors"
)

var (
	ErrTeamIdRequired          = errors.New("team id is required")
	ErrNameRequired            = errors.New("name is required")
	ErrTemplateNotFound        = errors.New("meeting template not found")
	ErrTemplateIdAlreadyExists = errors.New("meeting template id already exists")
	ErrCreateOptionsRequired   = errors.New("create options are required")
)
