package meetingmember

import (
	"errors"
)

var (
	ErrMeetingIdRequired     = errors.New("meeting id is required")
	ErrUserIdRequired        = errors.New("user id is required")
	ErrMeetingMemberExists   = errors.New("meeting member already exists")
	ErrCreateOptionsRequired = errors.New("create options are required")
)
