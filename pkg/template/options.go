package template

type FindOptions struct {
	Ids          []string
	TeamIds      []string
	WithInactive bool
}

type CreateOptions struct {
	TeamId      string
	OrgId       string
	Name        string
	MeetingType string
}
