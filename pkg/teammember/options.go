package teammember

type FindOptions struct {
	Ids         []string
	TeamIds     []string
	UserIds     []string
	WithRemoved bool
}

type CreateOptions struct {
	TeamId        string
	UserId        string
	PreferredName string
	IsLead        bool
}
