package meetingmember

type FindOptions struct {
	Ids        []string
	MeetingIds []string
}

type CreateOptions struct {
	MeetingId   string
	TeamId      string
	UserId      string
	IsCheckedIn bool
}
