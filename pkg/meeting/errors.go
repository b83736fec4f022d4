package meeting

import (
	"errors"
)

var (
	ErrTeamIdRequired          = errors.New("team id is required")
	ErrCreatedByRequired       = errors.New("created by is required")
	ErrMeetingTypeInvalid      = errors.New("meeting type is invalid")
	ErrMeetingNotFound         = errors.New("meeting not found")
	ErrMeetingIdAlreadyExists  = errors.New("meeting id already exists")
	ErrMeetingAlreadyEnded     = errors.New("meeting already ended")
	ErrCreateOptionsRequired   = errors.New("create options are required")
	ErrUpdateOptionsRequired   = errors.New("update options are required")
	ErrUpdateFieldMaskRequired = errors.New("update field mask are required")
)
